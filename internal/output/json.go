package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/unsc-scraper/internal/types"
)

// Document is the JSON output envelope.
type Document struct {
	Source      string                   `json:"source"`
	Backend     string                   `json:"backend"`
	ScrapedAt   time.Time                `json:"scraped_at"`
	Count       int                      `json:"count"`
	Resolutions []types.ResolutionRecord `json:"resolutions"`
}

// NewDocument wraps set with run metadata.
func NewDocument(source, backend string, scrapedAt time.Time, set types.ResolutionSet) *Document {
	records := []types.ResolutionRecord(set)
	if records == nil {
		records = []types.ResolutionRecord{}
	}
	return &Document{
		Source:      source,
		Backend:     backend,
		ScrapedAt:   scrapedAt.UTC(),
		Count:       len(records),
		Resolutions: records,
	}
}

// WriteJSON writes doc to path as indented JSON.
func WriteJSON(path string, doc *Document) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteJSONTo(w, doc)
	})
}

// WriteJSONTo encodes doc to w.
func WriteJSONTo(w io.Writer, doc *Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
