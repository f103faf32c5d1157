package aggregationv1

// Account is a bank account aggregated from a credential.
type Account struct {
	AccountID string  `json:"account_id"`
	Name      string  `json:"name,omitempty"`
	IBAN      string  `json:"iban,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Balance   float64 `json:"balance,omitempty"`
}

// Transaction is a movement on an account, card, liability or investment.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	AccountID     string  `json:"account_id,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency,omitempty"`
	Description   string  `json:"description,omitempty"`
	ValueDate     string  `json:"value_date,omitempty"`
}

// Portfolio is an investment portfolio.
type Portfolio struct {
	PortfolioID string  `json:"portfolio_id"`
	Name        string  `json:"name,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	TotalValue  float64 `json:"total_value,omitempty"`
}

// Investment is a position held inside a portfolio.
type Investment struct {
	ISIN        string  `json:"isin,omitempty"`
	Name        string  `json:"name,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Price       float64 `json:"price,omitempty"`
	MarketValue float64 `json:"market_value,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

// Liability is a loan or mortgage.
type Liability struct {
	LiabilityID        string  `json:"liability_id"`
	Type               string  `json:"type,omitempty"`
	OutstandingBalance float64 `json:"outstanding_balance,omitempty"`
	Currency           string  `json:"currency,omitempty"`
}

// Card is a credit or debit card.
type Card struct {
	CardID           string  `json:"card_id"`
	Name             string  `json:"name,omitempty"`
	MaskedNumber     string  `json:"masked_number,omitempty"`
	Type             string  `json:"type,omitempty"`
	AvailableBalance float64 `json:"available_balance,omitempty"`
}

// Holder is an account holder.
type Holder struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Identity is the verified identity of the credential owner.
type Identity struct {
	Name     string `json:"name,omitempty"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}
