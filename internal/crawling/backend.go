package crawling

import "context"

// Node is an element or document handle owned by a Backend. Only the backend that
// returned a node may interpret it.
type Node = any

// Backend retrieves pages and queries them with CSS selectors. Implementations
// differ in how the page is fetched and parsed; the crawl is written once against
// this interface.
type Backend interface {
	// Name identifies the backend in logs and output metadata.
	Name() string
	// FetchDocument retrieves url and returns its document node.
	FetchDocument(ctx context.Context, url string) (Node, error)
	// SelectAll returns the descendants of node matching selector, in document order.
	SelectAll(ctx context.Context, node Node, selector string) ([]Node, error)
	// TextOf returns the concatenated text of node and all its descendants.
	TextOf(ctx context.Context, node Node) (string, error)
	// Attr returns the named attribute and whether it is present.
	Attr(ctx context.Context, node Node, name string) (string, bool, error)
	// Close releases resources held for the run.
	Close() error
}

// URLPolicy decides whether a page may be fetched.
type URLPolicy interface {
	Allowed(ctx context.Context, url string) (bool, error)
}
