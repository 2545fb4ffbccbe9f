package crawling

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/unsc-scraper/internal/types"
)

// DefaultBaseURL is the index page listing one link per year.
// The trailing slash is required for relative year links to resolve correctly.
const DefaultBaseURL = "http://www.un.org/en/sc/documents/resolutions/"

// ContentTableSelector locates the table holding year links on the index page and
// resolution rows on a year page.
const ContentTableSelector = "#content > table"

// DiscoverYears fetches the index page at baseURL and returns one entry per year
// link, in page order.
func DiscoverYears(ctx context.Context, backend Backend, baseURL string) ([]types.YearEntry, error) {
	doc, err := backend.FetchDocument(ctx, baseURL)
	if err != nil {
		return nil, &CrawlError{Message: fmt.Sprintf("failed to fetch index page %s", baseURL), Cause: err}
	}

	tables, err := backend.SelectAll(ctx, doc, ContentTableSelector)
	if err != nil {
		return nil, &CrawlError{Message: "failed to select content table", Cause: err}
	}
	if len(tables) != 1 {
		return nil, &StructureError{
			URL:     baseURL,
			Message: fmt.Sprintf("expected exactly 1 content table, found %d", len(tables)),
		}
	}

	links, err := backend.SelectAll(ctx, tables[0], "a")
	if err != nil {
		return nil, &CrawlError{Message: "failed to select year links", Cause: err}
	}

	entries := make([]types.YearEntry, 0, len(links))
	for _, link := range links {
		href, ok, err := backend.Attr(ctx, link, "href")
		if err != nil {
			return nil, &CrawlError{Message: "failed to read year link href", Cause: err}
		}
		if !ok {
			return nil, &StructureError{URL: baseURL, Message: "year link has no href"}
		}

		yearURL, err := resolveURL(baseURL, href)
		if err != nil {
			return nil, &StructureError{URL: baseURL, Message: "unresolvable year link", Cause: err}
		}

		text, err := backend.TextOf(ctx, link)
		if err != nil {
			return nil, &CrawlError{Message: "failed to read year link text", Cause: err}
		}
		year, err := parseYear(text)
		if err != nil {
			return nil, &YearParseError{URL: baseURL, Text: text, Cause: err}
		}

		entry := types.YearEntry{Year: year, URL: yearURL}
		if err := entry.Validate(); err != nil {
			return nil, &StructureError{URL: baseURL, Message: fmt.Sprintf("invalid year link %q", href), Cause: err}
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, &StructureError{URL: baseURL, Message: "no year links found"}
	}

	return entries, nil
}

// parseYear converts link text to a year. The text must be a plain base-10 number,
// which doubles as a check that the index page still has the expected format.
func parseYear(text string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if year <= 0 {
		return 0, fmt.Errorf("year must be positive, got %d", year)
	}
	return year, nil
}
