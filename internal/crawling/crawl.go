package crawling

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jonathan/unsc-scraper/internal/types"
)

// DefaultDelay is the pause before each year page request.
const DefaultDelay = 10 * time.Millisecond

// YearCallback is called after each year page has been extracted.
type YearCallback func(entry types.YearEntry, records []types.ResolutionRecord)

// Options configures a crawl.
type Options struct {
	BaseURL string
	// Delay is waited before every year page request. Zero disables it.
	Delay time.Duration
	// Exceptions lists irregular years. A nil table treats every year as regular.
	Exceptions types.ExceptionTable
	// CleanText collapses whitespace in symbol and title text.
	CleanText bool
	// Policy, when set, is consulted before every page fetch.
	Policy URLPolicy

	Progress    io.Writer // "Processing: <url>" lines
	Diagnostics io.Writer // skipped-row notices
	Verbose     bool
	OnYear      YearCallback
}

// DefaultOptions returns options for crawling the live site.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:     DefaultBaseURL,
		Delay:       DefaultDelay,
		Exceptions:  types.DefaultExceptions(),
		Progress:    os.Stdout,
		Diagnostics: os.Stderr,
	}
}

// Crawl discovers every year on the index page and extracts each year's
// resolutions in order. Any failure aborts the whole crawl.
func Crawl(ctx context.Context, backend Backend, opts *Options) (types.ResolutionSet, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if opts.Verbose {
		log.Printf("[CRAWL] Discovering years from %s using %s backend", baseURL, backend.Name())
	}
	if err := checkPolicy(ctx, opts.Policy, baseURL); err != nil {
		return nil, err
	}
	entries, err := DiscoverYears(ctx, backend, baseURL)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("[CRAWL] Found %d years (%d to %d)", len(entries), entries[0].Year, entries[len(entries)-1].Year)
	}

	progress := writerOr(opts.Progress, io.Discard)
	var out types.ResolutionSet
	for _, entry := range entries {
		if err := wait(ctx, opts.Delay); err != nil {
			return nil, &CrawlError{Message: "crawl cancelled", Cause: err}
		}
		if err := checkPolicy(ctx, opts.Policy, entry.URL); err != nil {
			return nil, err
		}

		_, _ = fmt.Fprintf(progress, "Processing: %s\n", entry.URL)
		records, err := ExtractYear(ctx, backend, entry, opts)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", entry.Year, err)
		}
		if opts.Verbose {
			log.Printf("[CRAWL] %d: %d resolutions", entry.Year, len(records))
		}
		if opts.OnYear != nil {
			opts.OnYear(entry, records)
		}
		out = append(out, records...)
	}

	return out, nil
}

func checkPolicy(ctx context.Context, policy URLPolicy, url string) error {
	if policy == nil {
		return nil
	}
	allowed, err := policy.Allowed(ctx, url)
	if err != nil {
		return &CrawlError{Message: fmt.Sprintf("failed to check robots policy for %s", url), Cause: err}
	}
	if !allowed {
		return &CrawlError{Message: fmt.Sprintf("fetching %s is disallowed by robots.txt", url)}
	}
	return nil
}

// wait pauses for d, returning early with the context's error if it is cancelled.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func writerOr(w io.Writer, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
