// Package fetch - browser.go provides a long-lived headless browser session.
package fetch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserOptions configures the headless browser session.
type BrowserOptions struct {
	// Headless hides the browser window.
	Headless bool
	// PageTimeout bounds each navigation. Zero means DefaultTimeout.
	PageTimeout time.Duration
	// ExecPath overrides the Chrome binary lookup.
	ExecPath  string
	UserAgent string
	Verbose   bool
}

// DefaultBrowserOptions returns headless defaults.
func DefaultBrowserOptions() *BrowserOptions {
	return &BrowserOptions{
		Headless:    true,
		PageTimeout: DefaultTimeout,
	}
}

// resolveBrowserOptions returns a copy of opts with defaults filled in.
// The caller's struct is left as it was.
func resolveBrowserOptions(opts *BrowserOptions) BrowserOptions {
	if opts == nil {
		return *DefaultBrowserOptions()
	}
	resolved := *opts
	if resolved.PageTimeout <= 0 {
		resolved.PageTimeout = DefaultTimeout
	}
	return resolved
}

// BrowserSession owns a single Chrome process reused across page loads.
// Close must be called exactly once the run is over; further calls are no-ops.
// Requires Chrome/Chromium to be installed on the system.
type BrowserSession struct {
	ctx         context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc
	opts        BrowserOptions
	closeOnce   sync.Once
}

// NewBrowserSession starts the browser and opens one tab.
func NewBrowserSession(ctx context.Context, opts *BrowserOptions) (*BrowserSession, error) {
	resolved := resolveBrowserOptions(opts)
	opts = &resolved

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// Images are never needed for table extraction
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run launches the browser process.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Started headless=%v browser session", opts.Headless)
	}

	return &BrowserSession{
		ctx:         tabCtx,
		cancelAlloc: cancelAlloc,
		cancelTab:   cancelTab,
		opts:        *opts,
	}, nil
}

// Navigate loads url in the session's tab and waits for the body to be ready.
func (s *BrowserSession) Navigate(ctx context.Context, url string) error {
	if s.opts.Verbose {
		log.Printf("[BROWSER] Navigating to %s", url)
	}
	err := s.Run(ctx, s.opts.PageTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("browser navigation to %s failed: %w", url, err)
	}
	return nil
}

// Run executes actions against the session's tab. The call is bounded by timeout
// and aborted early if ctx is cancelled.
func (s *BrowserSession) Run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if timeout <= 0 {
		timeout = s.opts.PageTimeout
	}
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Close shuts the tab and the browser process down.
func (s *BrowserSession) Close() error {
	s.closeOnce.Do(func() {
		if s.opts.Verbose {
			log.Printf("[BROWSER] Closing browser session")
		}
		s.cancelTab()
		s.cancelAlloc()
	})
	return nil
}
