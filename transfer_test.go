package payapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/payapi"
	"github.com/iho/payapi/mocks"
)

const transferFixture = `{"id":"tr_1","amount":1000,"amount_reversed":0,"created":1690000000,"currency":"usd","livemode":false,"metadata":{},"reversals":{"object":"list","data":[],"has_more":false,"url":"/v1/transfers/tr_1/reversals"},"reversed":false}`

func TestTransferUnmarshalFixture(t *testing.T) {
	var transfer payapi.Transfer
	if err := json.Unmarshal([]byte(transferFixture), &transfer); err != nil {
		t.Fatalf("unexpected error unmarshaling fixture: %v", err)
	}

	if transfer.ID != "tr_1" {
		t.Errorf("expected id tr_1, got %s", transfer.ID)
	}
	if transfer.Amount != 1000 {
		t.Errorf("expected amount 1000, got %d", transfer.Amount)
	}
	if transfer.AmountReversed != 0 {
		t.Errorf("expected amount_reversed 0, got %d", transfer.AmountReversed)
	}
	if transfer.Currency != payapi.CurrencyUSD {
		t.Errorf("expected currency usd, got %s", transfer.Currency)
	}
	if transfer.Created.Time().Unix() != 1690000000 {
		t.Errorf("unexpected created time: %v", transfer.Created)
	}
	if transfer.Destination != nil {
		t.Errorf("expected nil destination, got %+v", transfer.Destination)
	}
	if transfer.Reversed {
		t.Error("expected reversed false")
	}
	if transfer.Reversals.Object != "list" || len(transfer.Reversals.Data) != 0 {
		t.Errorf("unexpected reversals list: %+v", transfer.Reversals)
	}
}

func TestTransferObject(t *testing.T) {
	var _ payapi.Object = (*payapi.Transfer)(nil)
	var _ payapi.Object = (*payapi.TransferReversal)(nil)
	var _ payapi.Object = (*payapi.Account)(nil)
	var _ payapi.Object = (*payapi.Charge)(nil)
	var _ payapi.Object = (*payapi.BalanceTransaction)(nil)

	transfer := &payapi.Transfer{ID: "tr_42", Amount: 5, Reversed: true, AmountReversed: 5}
	if transfer.ObjectID() != "tr_42" {
		t.Errorf("expected ObjectID tr_42, got %s", transfer.ObjectID())
	}
	if transfer.ObjectType() != "transfer" {
		t.Errorf("expected ObjectType transfer, got %s", transfer.ObjectType())
	}
}

// Serializing a transfer decoded from a response must not invent fields that
// were absent in the input: optionals are omitted, not emitted as null.
func TestTransferRoundTripOmitsAbsentFields(t *testing.T) {
	var transfer payapi.Transfer
	if err := json.Unmarshal([]byte(transferFixture), &transfer); err != nil {
		t.Fatalf("unexpected error unmarshaling fixture: %v", err)
	}

	out, err := json.Marshal(&transfer)
	if err != nil {
		t.Fatalf("unexpected error marshaling transfer: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unexpected error decoding round-tripped JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(transferFixture), &want); err != nil {
		t.Fatalf("unexpected error decoding fixture: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed the object:\ngot  %v\nwant %v", got, want)
	}
}

func TestTransferRoundTripPreservesOptionalFields(t *testing.T) {
	input := `{"id":"tr_2","amount":900,"amount_reversed":900,"balance_transaction":"txn_1","created":1690000001,"currency":"eur","description":"payout","destination":"acct_1","livemode":true,"metadata":{"order":"o_1"},"reversals":{"object":"list","data":[],"has_more":false,"url":"/v1/transfers/tr_2/reversals"},"reversed":true,"source_type":"card","transfer_group":"group_1"}`

	var transfer payapi.Transfer
	if err := json.Unmarshal([]byte(input), &transfer); err != nil {
		t.Fatalf("unexpected error unmarshaling: %v", err)
	}

	if transfer.Destination == nil || transfer.Destination.ID != "acct_1" {
		t.Fatalf("expected destination acct_1, got %+v", transfer.Destination)
	}
	if transfer.Destination.Expanded() {
		t.Error("expected unexpanded destination")
	}
	if transfer.SourceType == nil || *transfer.SourceType != payapi.TransferSourceTypeCard {
		t.Errorf("expected source_type card, got %v", transfer.SourceType)
	}

	out, err := json.Marshal(&transfer)
	if err != nil {
		t.Fatalf("unexpected error marshaling: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unexpected error decoding output: %v", err)
	}
	if err := json.Unmarshal([]byte(input), &want); err != nil {
		t.Fatalf("unexpected error decoding input: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed the object:\ngot  %v\nwant %v", got, want)
	}
}

func TestTransferListParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params *payapi.TransferListParams
		want   string
	}{
		{
			name:   "nil params",
			params: nil,
			want:   "",
		},
		{
			name:   "zero params",
			params: &payapi.TransferListParams{},
			want:   "",
		},
		{
			name:   "limit only",
			params: &payapi.TransferListParams{Limit: payapi.Int64(5)},
			want:   "limit=5",
		},
		{
			name: "cursor and created range",
			params: &payapi.TransferListParams{
				Created:       &payapi.RangeQuery{GreaterThanOrEqual: 1690000000},
				Limit:         payapi.Int64(3),
				StartingAfter: payapi.String("tr_9"),
			},
			want: "created%5Bgte%5D=1690000000&limit=3&starting_after=tr_9",
		},
		{
			name: "expand paths",
			params: &payapi.TransferListParams{
				Expand: []string{"data.destination", "data.balance_transaction"},
			},
			want: "expand%5B%5D=data.destination&expand%5B%5D=data.balance_transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := payapi.EncodeParams(tt.params)
			if err != nil {
				t.Fatalf("unexpected encode error: %v", err)
			}
			if got := values.Encode(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestListTransfers(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	params := &payapi.TransferListParams{Limit: payapi.Int64(2)}
	backend.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/transfers", params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, v any) error {
			list := v.(*payapi.List[payapi.Transfer])
			list.Object = "list"
			list.Data = []payapi.Transfer{{ID: "tr_2"}, {ID: "tr_1"}}
			list.HasMore = true
			list.URL = "/v1/transfers"
			return nil
		})

	list, err := payapi.ListTransfers(context.Background(), backend, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(list.Data) != 2 || list.Data[0].ID != "tr_2" {
		t.Errorf("unexpected list data: %+v", list.Data)
	}
	if !list.HasMore {
		t.Error("expected has_more true")
	}
}

// Backend failures pass through list untouched: no wrapping, no retry.
func TestListTransfersPropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	backendErr := &payapi.Error{StatusCode: 500, Type: payapi.ErrorTypeAPI, Message: "boom"}
	backend.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/transfers", gomock.Any(), gomock.Any()).
		Return(backendErr)

	_, err := payapi.ListTransfers(context.Background(), backend, nil)
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error unchanged, got %v", err)
	}
}

func TestGetTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	backend.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/transfers/tr_7", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, v any) error {
			*(v.(*payapi.Transfer)) = payapi.Transfer{ID: "tr_7", Amount: 100}
			return nil
		})

	transfer, err := payapi.GetTransfer(context.Background(), backend, "tr_7", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transfer.ID != "tr_7" || transfer.Amount != 100 {
		t.Errorf("unexpected transfer: %+v", transfer)
	}
}

func TestCreateTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	params := &payapi.TransferCreateParams{
		Amount:      1500,
		Currency:    payapi.CurrencyUSD,
		Destination: "acct_1",
	}
	backend.EXPECT().
		Call(gomock.Any(), http.MethodPost, "/transfers", params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, v any) error {
			*(v.(*payapi.Transfer)) = payapi.Transfer{ID: "tr_new", Amount: 1500}
			return nil
		})

	transfer, err := payapi.CreateTransfer(context.Background(), backend, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transfer.ID != "tr_new" {
		t.Errorf("unexpected transfer: %+v", transfer)
	}
}

func TestUpdateTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	params := &payapi.TransferUpdateParams{Description: payapi.String("updated")}
	backend.EXPECT().
		Call(gomock.Any(), http.MethodPost, "/transfers/tr_3", params, gomock.Any()).
		Return(nil)

	if _, err := payapi.UpdateTransfer(context.Background(), backend, "tr_3", params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListTransferReversals(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)

	backend.EXPECT().
		Call(gomock.Any(), http.MethodGet, "/transfers/tr_5/reversals", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, v any) error {
			list := v.(*payapi.List[payapi.TransferReversal])
			list.Object = "list"
			list.Data = []payapi.TransferReversal{{ID: "trr_1", Amount: 200}}
			return nil
		})

	list, err := payapi.ListTransferReversals(context.Background(), backend, "tr_5", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].ID != "trr_1" {
		t.Errorf("unexpected reversals: %+v", list.Data)
	}
}
