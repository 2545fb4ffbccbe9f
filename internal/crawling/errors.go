// Package crawling implements the two-stage UNSC resolution crawl: discover the
// per-year pages from the index, then extract resolution rows from each year.
package crawling

import "fmt"

// CrawlError represents a general crawling failure, such as a fetch that failed
// or a URL the robots policy disallows.
type CrawlError struct {
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("crawl error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("crawl error: %s", e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// StructureError means a page no longer has the layout the scraper expects.
// It is never recovered from: a partial result on a changed page is worse than none.
type StructureError struct {
	URL     string
	Message string
	Cause   error
}

func (e *StructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unexpected page structure at %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("unexpected page structure at %s: %s", e.URL, e.Message)
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}

// YearParseError represents index link text that is not a year.
type YearParseError struct {
	URL   string
	Text  string
	Cause error
}

func (e *YearParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("year parse error at %s: %q: %v", e.URL, e.Text, e.Cause)
	}
	return fmt.Sprintf("year parse error at %s: %q", e.URL, e.Text)
}

func (e *YearParseError) Unwrap() error {
	return e.Cause
}
