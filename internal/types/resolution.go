// Package types provides type definitions for structured data used throughout the unsc-scraper system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// YearEntry pairs a year discovered on the index page with the URL of that year's page.
type YearEntry struct {
	Year int    `json:"year" validate:"gt=0"`
	URL  string `json:"url" validate:"required,url"`
}

// ResolutionRecord is one Security Council resolution extracted from a year page.
type ResolutionRecord struct {
	Year   int    `json:"year" validate:"gt=0"`
	Symbol string `json:"symbol"`
	Title  string `json:"title"`
	URL    string `json:"url" validate:"required,url"`
}

// ResolutionSet is the ordered collection of records accumulated over a run.
type ResolutionSet []ResolutionRecord

// YearCount is the number of records collected for one year.
type YearCount struct {
	Year  int
	Count int
}

// Validate validates the YearEntry using the validator.
func (e *YearEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Validate validates the ResolutionRecord using the validator.
func (r *ResolutionRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CountByYear returns record counts per year, ordered by each year's first appearance.
func (s ResolutionSet) CountByYear() []YearCount {
	counts := make([]YearCount, 0)
	index := make(map[int]int)
	for _, r := range s {
		i, ok := index[r.Year]
		if !ok {
			i = len(counts)
			index[r.Year] = i
			counts = append(counts, YearCount{Year: r.Year})
		}
		counts[i].Count++
	}
	return counts
}
