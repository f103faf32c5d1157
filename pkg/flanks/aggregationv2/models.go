package aggregationv2

// Product is a financial product (account, card, portfolio, loan) in the
// v2 aggregation model.
type Product struct {
	ProductID        string            `json:"product_id"`
	CredentialsToken string            `json:"credentials_token,omitempty"`
	Type             string            `json:"type,omitempty"`
	Name             string            `json:"name,omitempty"`
	Currency         string            `json:"currency,omitempty"`
	Balance          float64           `json:"balance,omitempty"`
	Labels           map[string]string `json:"labels,omitempty"`
}

// ProductQuery filters product listings. Zero fields are omitted from the
// request.
type ProductQuery struct {
	CredentialsTokenIn []string          `json:"credentials_token_in,omitempty"`
	TypeIn             []string          `json:"type_in,omitempty"`
	Labels             map[string]string `json:"labels,omitempty"`
}

// Transaction is a movement on a product in the v2 aggregation model.
type Transaction struct {
	TransactionID string            `json:"transaction_id"`
	ProductID     string            `json:"product_id,omitempty"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency,omitempty"`
	Description   string            `json:"description,omitempty"`
	ValueDate     string            `json:"value_date,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`
}

// TransactionQuery filters transaction listings.
type TransactionQuery struct {
	ProductIDIn   []string          `json:"product_id_in,omitempty"`
	ValueDateFrom string            `json:"value_date_from,omitempty"`
	ValueDateTo   string            `json:"value_date_to,omitempty"`
	Labels        map[string]string `json:"labels,omitempty"`
}
