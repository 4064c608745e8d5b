package payapi

// Account is a connected account, reduced to the fields transfer flows
// reference. The full account surface lives outside this SDK.
type Account struct {
	ID              string    `json:"id"`
	Country         *string   `json:"country,omitempty"`
	DefaultCurrency *Currency `json:"default_currency,omitempty"`
	Email           *string   `json:"email,omitempty"`
	Metadata        Metadata  `json:"metadata,omitempty"`
}

// ObjectID implements Object.
func (a *Account) ObjectID() string { return a.ID }

// ObjectType implements Object.
func (a *Account) ObjectType() string { return "account" }
