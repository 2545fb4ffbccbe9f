package backends

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/fetch"
)

// GoqueryBackend fetches pages over HTTP and queries them with goquery.
// Nodes are single-element *goquery.Selection values.
type GoqueryBackend struct {
	client    *fetch.Client
	selectors *selectorCache
}

// NewGoqueryBackend creates a goquery backend fetching with client.
func NewGoqueryBackend(client *fetch.Client) *GoqueryBackend {
	return &GoqueryBackend{
		client:    client,
		selectors: newSelectorCache(),
	}
}

// Name returns the backend name.
func (b *GoqueryBackend) Name() string {
	return NameGoquery
}

// FetchDocument retrieves and parses url.
func (b *GoqueryBackend) FetchDocument(ctx context.Context, url string) (crawling.Node, error) {
	result, err := b.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	body, err := decodeBody(result)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}
	return doc.Selection, nil
}

// SelectAll returns one selection per matching descendant.
func (b *GoqueryBackend) SelectAll(_ context.Context, node crawling.Node, selector string) ([]crawling.Node, error) {
	sel, err := asSelection(node)
	if err != nil {
		return nil, err
	}
	matcher, err := b.selectors.compile(selector)
	if err != nil {
		return nil, err
	}

	found := sel.FindMatcher(matcher)
	nodes := make([]crawling.Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, s)
	})
	return nodes, nil
}

// TextOf returns the combined text of the selection and its descendants.
func (b *GoqueryBackend) TextOf(_ context.Context, node crawling.Node) (string, error) {
	sel, err := asSelection(node)
	if err != nil {
		return "", err
	}
	return sel.Text(), nil
}

// Attr returns the named attribute of the selection.
func (b *GoqueryBackend) Attr(_ context.Context, node crawling.Node, name string) (string, bool, error) {
	sel, err := asSelection(node)
	if err != nil {
		return "", false, err
	}
	value, ok := sel.Attr(name)
	return value, ok, nil
}

// Close is a no-op; every request is independent.
func (b *GoqueryBackend) Close() error {
	return nil
}

func asSelection(node crawling.Node) (*goquery.Selection, error) {
	sel, ok := node.(*goquery.Selection)
	if !ok || sel == nil {
		return nil, fmt.Errorf("goquery backend: unexpected node type %T", node)
	}
	return sel, nil
}
