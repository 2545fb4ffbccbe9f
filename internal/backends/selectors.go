// Package backends provides the interchangeable page retrieval and query
// strategies used by the crawl: a tolerant goquery parser, a plain html.Node tree
// queried with cascadia, and a headless Chrome driven through chromedp.
package backends

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html/charset"

	"github.com/jonathan/unsc-scraper/internal/fetch"
)

// selectorCache compiles each CSS selector once per backend.
type selectorCache struct {
	mu        sync.Mutex
	selectors map[string]cascadia.Selector
}

func newSelectorCache() *selectorCache {
	return &selectorCache{selectors: make(map[string]cascadia.Selector)}
}

func (c *selectorCache) compile(selector string) (cascadia.Selector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sel, ok := c.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	c.selectors[selector] = sel
	return sel, nil
}

// decodeBody converts the response body to UTF-8 using the declared or sniffed charset.
func decodeBody(result *fetch.Result) (io.Reader, error) {
	r, err := charset.NewReader(bytes.NewReader(result.Body), result.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset of %s: %w", result.URL, err)
	}
	return r, nil
}
