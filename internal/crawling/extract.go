package crawling

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/unsc-scraper/internal/types"
)

// MinRecordsPerYear is the fewest resolutions a regular year page may yield.
const MinRecordsPerYear = 2

// ExtractYear fetches the page for entry and returns its resolutions in row order.
// Irregular years are handled according to opts.Exceptions.
func ExtractYear(ctx context.Context, backend Backend, entry types.YearEntry, opts *Options) ([]types.ResolutionRecord, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	rule := opts.Exceptions.Lookup(entry.Year)

	doc, err := backend.FetchDocument(ctx, entry.URL)
	if err != nil {
		return nil, &CrawlError{Message: fmt.Sprintf("failed to fetch year page %s", entry.URL), Cause: err}
	}

	tables, err := backend.SelectAll(ctx, doc, ContentTableSelector)
	if err != nil {
		return nil, &CrawlError{Message: "failed to select content table", Cause: err}
	}
	if len(tables) == 0 || (len(tables) > 1 && !rule.DuplicateTables) {
		return nil, &StructureError{
			URL:     entry.URL,
			Message: fmt.Sprintf("expected exactly 1 content table for %d, found %d", entry.Year, len(tables)),
		}
	}

	rows, err := backend.SelectAll(ctx, tables[0], "tr")
	if err != nil {
		return nil, &CrawlError{Message: "failed to select table rows", Cause: err}
	}

	records := make([]types.ResolutionRecord, 0, len(rows))
	for _, row := range rows {
		record, ok, err := extractRow(ctx, backend, entry, row, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, record)
		}
	}

	if len(records) < MinRecordsPerYear && !rule.ShortYear {
		return nil, &StructureError{
			URL:     entry.URL,
			Message: fmt.Sprintf("expected at least %d resolutions for %d, found %d", MinRecordsPerYear, entry.Year, len(records)),
		}
	}

	return records, nil
}

// extractRow turns one table row into a record. Header rows and rows without a
// symbol link report ok=false.
func extractRow(ctx context.Context, backend Backend, entry types.YearEntry, row Node, opts *Options) (types.ResolutionRecord, bool, error) {
	cells, err := backend.SelectAll(ctx, row, "td")
	if err != nil {
		return types.ResolutionRecord{}, false, &CrawlError{Message: "failed to select row cells", Cause: err}
	}
	if len(cells) < 2 {
		// header
		return types.ResolutionRecord{}, false, nil
	}
	symbolCell := cells[0]
	titleCell := cells[len(cells)-1]

	symbol, err := textOf(ctx, backend, symbolCell, opts.CleanText)
	if err != nil {
		return types.ResolutionRecord{}, false, err
	}

	links, err := backend.SelectAll(ctx, symbolCell, "a")
	if err != nil {
		return types.ResolutionRecord{}, false, &CrawlError{Message: "failed to select symbol link", Cause: err}
	}
	if len(links) == 0 {
		// One row on the 2013 page has no view link.
		_, _ = fmt.Fprintf(writerOr(opts.Diagnostics, io.Discard), "Found a cell that does not have a view link: %s\n", symbol)
		return types.ResolutionRecord{}, false, nil
	}

	href, ok, err := backend.Attr(ctx, links[0], "href")
	if err != nil {
		return types.ResolutionRecord{}, false, &CrawlError{Message: "failed to read symbol link href", Cause: err}
	}
	if !ok {
		return types.ResolutionRecord{}, false, &StructureError{URL: entry.URL, Message: fmt.Sprintf("symbol link for %q has no href", symbol)}
	}
	docURL, err := resolveURL(entry.URL, href)
	if err != nil {
		return types.ResolutionRecord{}, false, &StructureError{URL: entry.URL, Message: "unresolvable document link", Cause: err}
	}

	title, err := textOf(ctx, backend, titleCell, opts.CleanText)
	if err != nil {
		return types.ResolutionRecord{}, false, err
	}

	record := types.ResolutionRecord{
		Year:   entry.Year,
		Symbol: symbol,
		Title:  title,
		URL:    docURL,
	}
	if err := record.Validate(); err != nil {
		return types.ResolutionRecord{}, false, &StructureError{URL: entry.URL, Message: fmt.Sprintf("invalid record for %q", symbol), Cause: err}
	}

	return record, true, nil
}

func textOf(ctx context.Context, backend Backend, node Node, clean bool) (string, error) {
	text, err := backend.TextOf(ctx, node)
	if err != nil {
		return "", &CrawlError{Message: "failed to read cell text", Cause: err}
	}
	if clean {
		text = cleanText(text)
	}
	return text, nil
}
