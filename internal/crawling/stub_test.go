package crawling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageBackend serves HTML strings from memory and queries them with goquery.
type pageBackend struct {
	pages   map[string]string
	fetched []string
	closed  bool
}

func newPageBackend(pages map[string]string) *pageBackend {
	return &pageBackend{pages: pages}
}

func (b *pageBackend) Name() string { return "stub" }

func (b *pageBackend) FetchDocument(_ context.Context, url string) (Node, error) {
	b.fetched = append(b.fetched, url)
	page, ok := b.pages[url]
	if !ok {
		return nil, fmt.Errorf("HTTP status 404 for %s", url)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	return doc.Selection, nil
}

func (b *pageBackend) SelectAll(_ context.Context, node Node, selector string) ([]Node, error) {
	var nodes []Node
	node.(*goquery.Selection).Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, s)
	})
	return nodes, nil
}

func (b *pageBackend) TextOf(_ context.Context, node Node) (string, error) {
	return node.(*goquery.Selection).Text(), nil
}

func (b *pageBackend) Attr(_ context.Context, node Node, name string) (string, bool, error) {
	v, ok := node.(*goquery.Selection).Attr(name)
	return v, ok, nil
}

func (b *pageBackend) Close() error {
	b.closed = true
	return nil
}

// denyPolicy refuses URLs containing a substring.
type denyPolicy struct {
	deny string
	err  error
}

func (p denyPolicy) Allowed(_ context.Context, url string) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	return !strings.Contains(url, p.deny), nil
}

var errRobots = errors.New("robots unavailable")
