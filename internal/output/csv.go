package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jonathan/unsc-scraper/internal/types"
)

// CSVHeader is the header row of the CSV output.
var CSVHeader = []string{"year", "symbol", "title", "url"}

// WriteCSV writes set to path as CSV.
func WriteCSV(path string, set types.ResolutionSet) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return WriteCSVTo(w, set)
	})
}

// WriteCSVTo writes the header and one row per record, in order.
func WriteCSVTo(w io.Writer, set types.ResolutionSet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, r := range set {
		row := []string{strconv.Itoa(r.Year), r.Symbol, r.Title, r.URL}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
