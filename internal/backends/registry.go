package backends

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/fetch"
)

// Backend names accepted by the registry.
const (
	NameGoquery  = "goquery"
	NameHTMLTree = "htmltree"
	NameBrowser  = "browser"
)

// Factory creates a ready backend. The caller owns it and must Close it.
type Factory func(ctx context.Context) (crawling.Backend, error)

type registration struct {
	description string
	factory     Factory
}

// Registry holds all available backends.
type Registry struct {
	backends map[string]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]registration),
	}
}

// Register adds a backend under name, replacing any previous registration.
func (r *Registry) Register(name, description string, factory Factory) {
	r.backends[name] = registration{description: description, factory: factory}
}

// New creates the backend registered under name.
func (r *Registry) New(ctx context.Context, name string) (crawling.Backend, error) {
	reg, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return reg.factory(ctx)
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description registered for name.
func (r *Registry) Describe(name string) string {
	return r.backends[name].description
}

// Options configures the default backends.
type Options struct {
	Fetch   *fetch.Options
	Browser *fetch.BrowserOptions
}

// DefaultRegistry creates a registry with all available backends.
func DefaultRegistry(opts *Options) *Registry {
	if opts == nil {
		opts = &Options{}
	}

	r := NewRegistry()
	r.Register(NameGoquery, "Tolerant HTML parser with CSS selectors (goquery)", func(_ context.Context) (crawling.Backend, error) {
		return NewGoqueryBackend(fetch.NewClient(opts.Fetch)), nil
	})
	r.Register(NameHTMLTree, "HTML5 node tree queried with cascadia selectors", func(_ context.Context) (crawling.Backend, error) {
		return NewHTMLTreeBackend(fetch.NewClient(opts.Fetch)), nil
	})
	r.Register(NameBrowser, "Headless Chrome driven by chromedp (requires Chrome)", func(ctx context.Context) (crawling.Backend, error) {
		return NewBrowserBackend(ctx, opts.Browser)
	})
	return r
}
