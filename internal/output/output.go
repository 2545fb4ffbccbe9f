// Package output writes a collected resolution set to disk.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an output file format.
type Format string

const (
	// FormatCSV writes year,symbol,title,url rows.
	FormatCSV Format = "csv"
	// FormatJSON writes a Document.
	FormatJSON Format = "json"
)

// DefaultPath is the output file written when none is given.
const DefaultPath = "unsc-resolutions.csv"

// FormatForPath returns explicit when set, otherwise infers the format from the
// file extension, falling back to CSV.
func FormatForPath(path, explicit string) (Format, error) {
	if explicit != "" {
		switch f := Format(strings.ToLower(explicit)); f {
		case FormatCSV, FormatJSON:
			return f, nil
		default:
			return "", fmt.Errorf("unsupported output format %q (expected csv or json)", explicit)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON, nil
	}
	return FormatCSV, nil
}

// writeFileAtomic writes to a temporary file next to path and renames it into
// place, so a failed write never leaves a partial file at path.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place at %s: %w", path, err)
	}
	return nil
}
