package payapi

import (
	"context"
	"net/http"
)

// TransferReversal represents funds returned from a previously created
// transfer, either partially or in full.
type TransferReversal struct {
	ID string `json:"id"`

	// Amount reversed, in minor currency units.
	Amount int64 `json:"amount"`

	// BalanceTransaction describes the reversal's impact on the platform
	// account balance.
	BalanceTransaction *Expandable[BalanceTransaction] `json:"balance_transaction,omitempty"`

	Created  Timestamp `json:"created"`
	Currency Currency  `json:"currency"`
	Metadata Metadata  `json:"metadata"`

	// Transfer is the transfer this reversal applies to.
	Transfer *Expandable[Transfer] `json:"transfer,omitempty"`
}

// ObjectID implements Object.
func (r *TransferReversal) ObjectID() string { return r.ID }

// ObjectType implements Object.
func (r *TransferReversal) ObjectType() string { return "transfer_reversal" }

// TransferReversalListParams paginates GET /transfers/{id}/reversals.
type TransferReversalListParams struct {
	EndingBefore  *string  `url:"ending_before,omitempty"`
	Expand        []string `url:"expand,omitempty,brackets"`
	Limit         *int64   `url:"limit,omitempty"`
	StartingAfter *string  `url:"starting_after,omitempty"`
}

// ListTransferReversals returns the reversals applied to a transfer, most
// recently created first.
func ListTransferReversals(ctx context.Context, b Backend, transferID string, params *TransferReversalListParams) (*List[TransferReversal], error) {
	list := &List[TransferReversal]{}
	if err := b.Call(ctx, http.MethodGet, "/transfers/"+transferID+"/reversals", params, list); err != nil {
		return nil, err
	}
	return list, nil
}
