package pagination

// Page holds one page of results plus the continuation cursor.
type Page[T any] struct {
	// Items in server-returned order. May be empty.
	Items []T

	// NextPageToken is the opaque cursor for the next page. Empty when
	// this is the last page.
	NextPageToken string
}

// HasNext reports whether a further page exists.
func (p Page[T]) HasNext() bool {
	return p.NextPageToken != ""
}
