// Package aggregationv2 implements the Flanks Aggregation API v2:
// cursor-paginated product and transaction listings plus label management.
package aggregationv2

import (
	"context"
	"iter"
	"net/http"

	"github.com/flanks-io/flanks-go/pkg/pagination"
	"github.com/flanks-io/flanks-go/pkg/transport"
)

const (
	listProductsPath      = "/aggregation/v2/list-products"
	productLabelsPath     = "/aggregation/v2/set-product-labels"
	listTransactionsPath  = "/aggregation/v2/list-transactions"
	transactionLabelsPath = "/aggregation/v2/set-transaction-labels"

	itemsKey = "items"
)

// Client calls the Aggregation API v2 through a shared transport
// connection.
type Client struct {
	conn *transport.Connection
}

// New creates an aggregation v2 client. The connection is shared, not
// owned.
func New(conn *transport.Connection) *Client {
	return &Client{conn: conn}
}

// queryBody wraps a query struct into the request template. A nil query
// becomes an empty object.
func queryBody(query any) map[string]any {
	if query == nil {
		return map[string]any{"query": map[string]any{}}
	}
	return map[string]any{"query": query}
}

// ListProducts iterates over every product matching the query, fetching
// pages lazily.
func (c *Client) ListProducts(ctx context.Context, query *ProductQuery) iter.Seq2[Product, error] {
	return c.productsPager(query).All(ctx)
}

// ProductsPage fetches a single page of products. An empty pageToken
// requests the first page.
func (c *Client) ProductsPage(ctx context.Context, query *ProductQuery, pageToken string) (pagination.Page[Product], error) {
	return c.productsPager(query).Next(ctx, pageToken)
}

func (c *Client) productsPager(query *ProductQuery) *pagination.Pager[Product] {
	var q any
	if query != nil {
		q = query
	}
	return pagination.NewPager[Product](c.conn, listProductsPath, queryBody(q), itemsKey)
}

// SetProductLabels replaces the labels of a product.
func (c *Client) SetProductLabels(ctx context.Context, productID string, labels map[string]string) error {
	_, err := c.conn.Call(ctx, http.MethodPost, productLabelsPath,
		map[string]any{"product_id": productID, "labels": labels}, nil)
	return err
}

// ListTransactions iterates over every transaction matching the query,
// fetching pages lazily.
func (c *Client) ListTransactions(ctx context.Context, query *TransactionQuery) iter.Seq2[Transaction, error] {
	return c.transactionsPager(query).All(ctx)
}

// TransactionsPage fetches a single page of transactions. An empty
// pageToken requests the first page.
func (c *Client) TransactionsPage(ctx context.Context, query *TransactionQuery, pageToken string) (pagination.Page[Transaction], error) {
	return c.transactionsPager(query).Next(ctx, pageToken)
}

func (c *Client) transactionsPager(query *TransactionQuery) *pagination.Pager[Transaction] {
	var q any
	if query != nil {
		q = query
	}
	return pagination.NewPager[Transaction](c.conn, listTransactionsPath, queryBody(q), itemsKey)
}

// SetTransactionLabels replaces the labels of a transaction.
func (c *Client) SetTransactionLabels(ctx context.Context, transactionID string, labels map[string]string) error {
	_, err := c.conn.Call(ctx, http.MethodPost, transactionLabelsPath,
		map[string]any{"transaction_id": transactionID, "labels": labels}, nil)
	return err
}
