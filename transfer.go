package payapi

import (
	"context"
	"net/http"
)

// TransferSourceType is the source balance a transfer draws from. The API
// documents card and bank_account; values outside that set pass through
// untouched rather than failing decode.
type TransferSourceType string

const (
	TransferSourceTypeBankAccount TransferSourceType = "bank_account"
	TransferSourceTypeCard        TransferSourceType = "card"
)

// Transfer represents a movement of funds to a connected account. It is a
// snapshot deserialized from a server response, not a live handle: there are
// no local mutation semantics.
type Transfer struct {
	// Unique identifier for the object.
	ID string `json:"id"`

	// Amount to be transferred, in minor currency units.
	Amount int64 `json:"amount"`

	// AmountReversed is the amount reversed so far, in minor units. Less
	// than Amount when only a partial reversal was issued.
	AmountReversed int64 `json:"amount_reversed"`

	// BalanceTransaction describes the impact of this transfer on the
	// platform account balance.
	BalanceTransaction *Expandable[BalanceTransaction] `json:"balance_transaction,omitempty"`

	// Created is when this record of the transfer was first created.
	Created Timestamp `json:"created"`

	// Currency is the lowercase three-letter ISO currency code.
	Currency Currency `json:"currency"`

	// Description is an arbitrary string attached to the object, often
	// useful for displaying to users.
	Description *string `json:"description,omitempty"`

	// Destination is the connected account the transfer was sent to.
	Destination *Expandable[Account] `json:"destination,omitempty"`

	// DestinationPayment is the payment the destination account received
	// for the transfer.
	DestinationPayment *Expandable[Charge] `json:"destination_payment,omitempty"`

	// Livemode is true when the object exists in live mode.
	Livemode bool `json:"livemode"`

	// Metadata holds caller-defined key-value annotations.
	Metadata Metadata `json:"metadata"`

	// Reversals lists the reversals applied to the transfer.
	Reversals List[TransferReversal] `json:"reversals"`

	// Reversed reports whether the transfer has been fully reversed, in
	// which case AmountReversed equals Amount. A partial reversal leaves
	// this false.
	Reversed bool `json:"reversed"`

	// SourceTransaction is the charge or payment that funded the transfer.
	// Nil when the transfer was funded from the available balance.
	SourceTransaction *Expandable[Charge] `json:"source_transaction,omitempty"`

	// SourceType is the source balance the transfer came from.
	SourceType *TransferSourceType `json:"source_type,omitempty"`

	// TransferGroup identifies this transaction as part of a group.
	TransferGroup *string `json:"transfer_group,omitempty"`
}

// ObjectID implements Object.
func (t *Transfer) ObjectID() string { return t.ID }

// ObjectType implements Object.
func (t *Transfer) ObjectType() string { return "transfer" }

// TransferListParams filters and paginates GET /transfers. Unset fields are
// omitted from the encoded query string. Limit ranges between 1 and 100 with
// a server-side default of 10; the client does not validate it.
type TransferListParams struct {
	// Created bounds the creation time of returned transfers.
	Created *RangeQuery `url:"created,omitempty"`

	// EndingBefore is a cursor: return the page of objects listed before
	// this identifier.
	EndingBefore *string `url:"ending_before,omitempty"`

	// Expand names the relations to inline in the response.
	Expand []string `url:"expand,omitempty,brackets"`

	// Limit caps the number of objects returned.
	Limit *int64 `url:"limit,omitempty"`

	// StartingAfter is a cursor: return the page of objects listed after
	// this identifier.
	StartingAfter *string `url:"starting_after,omitempty"`
}

// TransferParams carries options for retrieving a single transfer.
type TransferParams struct {
	Expand []string `url:"expand,omitempty,brackets"`
}

// TransferCreateParams creates a transfer to a connected account.
type TransferCreateParams struct {
	Amount        int64               `url:"amount"`
	Currency      Currency            `url:"currency"`
	Destination   string              `url:"destination"`
	Description   *string             `url:"description,omitempty"`
	Expand        []string            `url:"expand,omitempty,brackets"`
	Metadata      Metadata            `url:"metadata,omitempty"`
	SourceType    *TransferSourceType `url:"source_type,omitempty"`
	TransferGroup *string             `url:"transfer_group,omitempty"`
}

// TransferUpdateParams updates the mutable fields of an existing transfer.
type TransferUpdateParams struct {
	Description *string  `url:"description,omitempty"`
	Metadata    Metadata `url:"metadata,omitempty"`
}

// ListTransfers returns transfers sent to connected accounts, most recently
// created first. Pagination, filtering and expansion follow params.
func ListTransfers(ctx context.Context, b Backend, params *TransferListParams) (*List[Transfer], error) {
	list := &List[Transfer]{}
	if err := b.Call(ctx, http.MethodGet, "/transfers", params, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetTransfer retrieves a single transfer by identifier.
func GetTransfer(ctx context.Context, b Backend, id string, params *TransferParams) (*Transfer, error) {
	transfer := &Transfer{}
	if err := b.Call(ctx, http.MethodGet, "/transfers/"+id, params, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// CreateTransfer sends funds to a connected account.
func CreateTransfer(ctx context.Context, b Backend, params *TransferCreateParams) (*Transfer, error) {
	transfer := &Transfer{}
	if err := b.Call(ctx, http.MethodPost, "/transfers", params, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// UpdateTransfer updates a transfer's description or metadata.
func UpdateTransfer(ctx context.Context, b Backend, id string, params *TransferUpdateParams) (*Transfer, error) {
	transfer := &Transfer{}
	if err := b.Call(ctx, http.MethodPost, "/transfers/"+id, params, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}
