package backends

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/fetch"
)

// BrowserBackend loads pages in one headless Chrome session and queries the live DOM.
// Element nodes are *cdp.Node values; documents are browserDocument values.
type BrowserBackend struct {
	session *fetch.BrowserSession
}

// browserDocument stands for the document currently loaded in the session.
type browserDocument struct {
	url string
}

// NewBrowserBackend starts a browser session. The caller must Close the backend.
func NewBrowserBackend(ctx context.Context, opts *fetch.BrowserOptions) (*BrowserBackend, error) {
	session, err := fetch.NewBrowserSession(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &BrowserBackend{session: session}, nil
}

// Name returns the backend name.
func (b *BrowserBackend) Name() string {
	return NameBrowser
}

// FetchDocument navigates the session to url. Nodes from the previous page are
// invalid afterwards.
func (b *BrowserBackend) FetchDocument(ctx context.Context, url string) (crawling.Node, error) {
	if err := b.session.Navigate(ctx, url); err != nil {
		return nil, err
	}
	return browserDocument{url: url}, nil
}

// SelectAll queries the DOM below node. An empty result is returned immediately
// instead of waiting for a match to appear.
func (b *BrowserBackend) SelectAll(ctx context.Context, node crawling.Node, selector string) ([]crawling.Node, error) {
	opts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
	switch n := node.(type) {
	case browserDocument:
	case *cdp.Node:
		opts = append(opts, chromedp.FromNode(n))
	default:
		return nil, fmt.Errorf("browser backend: unexpected node type %T", node)
	}

	var found []*cdp.Node
	if err := b.session.Run(ctx, 0, chromedp.Nodes(selector, &found, opts...)); err != nil {
		return nil, fmt.Errorf("browser query %q failed: %w", selector, err)
	}

	nodes := make([]crawling.Node, len(found))
	for i, f := range found {
		nodes[i] = f
	}
	return nodes, nil
}

// TextOf returns the node's textContent, which includes all nested text.
func (b *BrowserBackend) TextOf(ctx context.Context, node crawling.Node) (string, error) {
	n, err := asCDPNode(node)
	if err != nil {
		return "", err
	}
	var text string
	err = b.session.Run(ctx, 0, chromedp.TextContent([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", fmt.Errorf("browser text read failed: %w", err)
	}
	return text, nil
}

// Attr returns the attribute as written in the markup, so hrefs stay unresolved.
func (b *BrowserBackend) Attr(_ context.Context, node crawling.Node, name string) (string, bool, error) {
	n, err := asCDPNode(node)
	if err != nil {
		return "", false, err
	}
	value, ok := n.Attribute(name)
	return value, ok, nil
}

// Close shuts the browser down.
func (b *BrowserBackend) Close() error {
	return b.session.Close()
}

func asCDPNode(node crawling.Node) (*cdp.Node, error) {
	n, ok := node.(*cdp.Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("browser backend: unexpected node type %T", node)
	}
	return n, nil
}
