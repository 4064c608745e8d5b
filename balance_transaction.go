package payapi

// BalanceTransaction records the impact of a funds movement on the platform
// account balance.
type BalanceTransaction struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Created     Timestamp `json:"created"`
	Currency    Currency  `json:"currency"`
	Description *string   `json:"description,omitempty"`
	Fee         int64     `json:"fee"`
	Net         int64     `json:"net"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
}

// ObjectID implements Object.
func (b *BalanceTransaction) ObjectID() string { return b.ID }

// ObjectType implements Object.
func (b *BalanceTransaction) ObjectType() string { return "balance_transaction" }
