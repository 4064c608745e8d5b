package payapi

// Charge is a payment record, reduced to the fields transfer flows reference
// as destination payments and source transactions.
type Charge struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Created     Timestamp `json:"created"`
	Currency    Currency  `json:"currency"`
	Description *string   `json:"description,omitempty"`
	Livemode    bool      `json:"livemode"`
	Metadata    Metadata  `json:"metadata,omitempty"`
}

// ObjectID implements Object.
func (c *Charge) ObjectID() string { return c.ID }

// ObjectType implements Object.
func (c *Charge) ObjectType() string { return "charge" }
