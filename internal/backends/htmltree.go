package backends

import (
	"context"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/fetch"
)

// HTMLTreeBackend fetches pages over HTTP, builds an html.Node tree and queries
// it directly with cascadia selectors. Nodes are *html.Node values.
type HTMLTreeBackend struct {
	client    *fetch.Client
	selectors *selectorCache
}

// NewHTMLTreeBackend creates a tree backend fetching with client.
func NewHTMLTreeBackend(client *fetch.Client) *HTMLTreeBackend {
	return &HTMLTreeBackend{
		client:    client,
		selectors: newSelectorCache(),
	}
}

// Name returns the backend name.
func (b *HTMLTreeBackend) Name() string {
	return NameHTMLTree
}

// FetchDocument retrieves url and parses it into a document node.
func (b *HTMLTreeBackend) FetchDocument(ctx context.Context, url string) (crawling.Node, error) {
	result, err := b.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	body, err := decodeBody(result)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}
	return doc, nil
}

// SelectAll returns the descendants of node matching selector.
func (b *HTMLTreeBackend) SelectAll(_ context.Context, node crawling.Node, selector string) ([]crawling.Node, error) {
	n, err := asHTMLNode(node)
	if err != nil {
		return nil, err
	}
	matcher, err := b.selectors.compile(selector)
	if err != nil {
		return nil, err
	}

	found := cascadia.QueryAll(n, matcher)
	nodes := make([]crawling.Node, len(found))
	for i, f := range found {
		nodes[i] = f
	}
	return nodes, nil
}

// TextOf concatenates every text node below node.
func (b *HTMLTreeBackend) TextOf(_ context.Context, node crawling.Node) (string, error) {
	n, err := asHTMLNode(node)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String(), nil
}

func collectText(node *html.Node, sb *strings.Builder) {
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

// Attr returns the named attribute of node. Attribute names are matched
// case-insensitively since the parser lowercases them.
func (b *HTMLTreeBackend) Attr(_ context.Context, node crawling.Node, name string) (string, bool, error) {
	n, err := asHTMLNode(node)
	if err != nil {
		return "", false, err
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true, nil
		}
	}
	return "", false, nil
}

// Close is a no-op; every request is independent.
func (b *HTMLTreeBackend) Close() error {
	return nil
}

func asHTMLNode(node crawling.Node) (*html.Node, error) {
	n, ok := node.(*html.Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("htmltree backend: unexpected node type %T", node)
	}
	return n, nil
}
