package backends_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/unsc-scraper/internal/backends"
	"github.com/jonathan/unsc-scraper/internal/crawling"
	"github.com/jonathan/unsc-scraper/internal/fetch"
)

type backendCase struct {
	name string
	open func(t *testing.T) crawling.Backend
}

func chromeInstalled() bool {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func allBackends() []backendCase {
	return []backendCase{
		{
			name: backends.NameGoquery,
			open: func(_ *testing.T) crawling.Backend {
				return backends.NewGoqueryBackend(fetch.NewClient(nil))
			},
		},
		{
			name: backends.NameHTMLTree,
			open: func(_ *testing.T) crawling.Backend {
				return backends.NewHTMLTreeBackend(fetch.NewClient(nil))
			},
		},
		{
			name: backends.NameBrowser,
			open: func(t *testing.T) crawling.Backend {
				if testing.Short() {
					t.Skip("Skipping browser backend in short mode")
				}
				if !chromeInstalled() {
					t.Skip("Chrome not installed, skipping browser backend")
				}
				b, err := backends.NewBrowserBackend(context.Background(), &fetch.BrowserOptions{
					Headless:    true,
					PageTimeout: 20 * time.Second,
				})
				require.NoError(t, err)
				return b
			},
		},
	}
}

// forEachBackend runs fn once per backend, closing the backend afterwards.
func forEachBackend(t *testing.T, fn func(t *testing.T, b crawling.Backend)) {
	t.Helper()
	for _, bc := range allBackends() {
		t.Run(bc.name, func(t *testing.T) {
			b := bc.open(t)
			defer func() { _ = b.Close() }()
			fn(t, b)
		})
	}
}
