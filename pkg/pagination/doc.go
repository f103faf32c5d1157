// Package pagination turns cursor-based Flanks list endpoints into lazy
// sequences of decoded items.
//
// Flanks v2 endpoints return pages shaped as {<items key>: [...],
// next_page_token: "..."} and accept an opaque page_token in the request
// body. The token is echoed back verbatim; it is never parsed or
// constructed by the client.
//
// Example usage:
//
//	pager := pagination.NewPager[Product](conn, "/aggregation/v2/list-products",
//		map[string]any{"query": map[string]any{}}, "items")
//	for product, err := range pager.All(ctx) {
//		if err != nil {
//			return err
//		}
//		use(product)
//	}
//
// Pages are fetched strictly on demand: abandoning iteration early never
// triggers a fetch beyond what was already consumed.
package pagination
