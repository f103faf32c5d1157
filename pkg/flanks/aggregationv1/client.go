// Package aggregationv1 implements the Flanks Aggregation API v1: per
// credential queries for accounts, cards, investments, liabilities and
// the data attached to them.
package aggregationv1

import (
	"context"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/transport"
)

// Client calls the Aggregation API v1 through a shared transport
// connection.
type Client struct {
	conn *transport.Connection
}

// New creates an aggregation v1 client. The connection is shared, not
// owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

// body builds the request payload: credentials_token plus any extra query
// fields the endpoint accepts (date ranges, account filters, ...).
func body(credentialsToken string, query map[string]any) map[string]any {
	payload := map[string]any{"credentials_token": credentialsToken}
	for k, v := range query {
		payload[k] = v
	}
	return payload
}

type portfoliosResponse struct {
	Portfolios []Portfolio `json:"portfolios"`
}

// Portfolios returns the investment portfolios of a credential.
func (c *Client) Portfolios(ctx context.Context, credentialsToken string, query map[string]any) ([]Portfolio, error) {
	resp, err := transport.Object[portfoliosResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/portfolio", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Portfolios, nil
}

type investmentsResponse struct {
	Investments []Investment `json:"investments"`
}

// Investments returns the investment positions of a credential.
func (c *Client) Investments(ctx context.Context, credentialsToken string, query map[string]any) ([]Investment, error) {
	resp, err := transport.Object[investmentsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/investment", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Investments, nil
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// InvestmentTransactions returns investment transactions.
func (c *Client) InvestmentTransactions(ctx context.Context, credentialsToken string, query map[string]any) ([]Transaction, error) {
	resp, err := transport.Object[transactionsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/investment/transaction", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// Accounts returns the bank accounts of a credential.
func (c *Client) Accounts(ctx context.Context, credentialsToken string, query map[string]any) ([]Account, error) {
	resp, err := transport.Object[accountsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/account", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// AccountTransactions returns account transactions.
func (c *Client) AccountTransactions(ctx context.Context, credentialsToken string, query map[string]any) ([]Transaction, error) {
	resp, err := transport.Object[transactionsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/data", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

type liabilitiesResponse struct {
	Liabilities []Liability `json:"liabilities"`
}

// Liabilities returns loans and mortgages.
func (c *Client) Liabilities(ctx context.Context, credentialsToken string, query map[string]any) ([]Liability, error) {
	resp, err := transport.Object[liabilitiesResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/liability", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Liabilities, nil
}

// LiabilityTransactions returns liability transactions.
func (c *Client) LiabilityTransactions(ctx context.Context, credentialsToken string, query map[string]any) ([]Transaction, error) {
	resp, err := transport.Object[transactionsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/liability/transaction", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

type cardsResponse struct {
	Cards []Card `json:"cards"`
}

// Cards returns credit and debit cards.
func (c *Client) Cards(ctx context.Context, credentialsToken string, query map[string]any) ([]Card, error) {
	resp, err := transport.Object[cardsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/card", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

// CardTransactions returns card transactions.
func (c *Client) CardTransactions(ctx context.Context, credentialsToken string, query map[string]any) ([]Transaction, error) {
	resp, err := transport.Object[transactionsResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/card/transaction", body(credentialsToken, query), nil)
	if err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

type identityResponse struct {
	Identity *Identity `json:"identity"`
}

// Identity returns the account holder identity, or nil when the entity
// does not expose one.
func (c *Client) Identity(ctx context.Context, credentialsToken string) (*Identity, error) {
	resp, err := transport.Object[identityResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/auth/", body(credentialsToken, nil), nil)
	if err != nil {
		return nil, err
	}
	return resp.Identity, nil
}

type holdersResponse struct {
	Holders []Holder `json:"holders"`
}

// Holders returns the account holders.
func (c *Client) Holders(ctx context.Context, credentialsToken string) ([]Holder, error) {
	resp, err := transport.Object[holdersResponse](ctx, c.conn, http.MethodPost,
		"/v0/bank/credentials/holder", body(credentialsToken, nil), nil)
	if err != nil {
		return nil, err
	}
	return resp.Holders, nil
}
