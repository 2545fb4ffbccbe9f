// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonathan/unsc-scraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for the scrape command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// RunInfo describes a scrape run for the header box.
type RunInfo struct {
	BaseURL       string
	Backend       string
	OutputPath    string
	Format        string
	Delay         time.Duration
	RespectRobots bool
	DatabaseSink  bool
}

// BackendInfo is one row of the backends listing.
type BackendInfo struct {
	Name        string
	Description string
	Default     bool
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunHeader outputs the settings a scrape run starts with.
func (p *Printer) PrintRunHeader(info RunInfo) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source:   %s\n", info.BaseURL))
	sb.WriteString(fmt.Sprintf("Backend:  %s\n", info.Backend))
	sb.WriteString(fmt.Sprintf("Output:   %s (%s)\n", info.OutputPath, info.Format))
	sb.WriteString(fmt.Sprintf("Delay:    %v\n", info.Delay))
	sb.WriteString(fmt.Sprintf("Robots:   %s\n", onOff(info.RespectRobots)))
	sb.WriteString(fmt.Sprintf("Database: %s", onOff(info.DatabaseSink)))

	p.printBox("UNSC RESOLUTIONS SCRAPE", sb.String())
}

// PrintSummary outputs a per-year record count table followed by the totals.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(set types.ResolutionSet, elapsed time.Duration) {
	counts := set.CountByYear()
	if len(counts) == 0 {
		fmt.Fprintln(p.out, "No resolutions scraped.")
		return
	}

	t := p.newTable()
	t.AppendHeader(table.Row{"Year", "Resolutions"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Year, c.Count})
	}
	t.AppendFooter(table.Row{"Total", len(set)})
	t.Render()

	fmt.Fprintf(p.out, "Scraped %d resolutions across %d years in %v\n",
		len(set), len(counts), elapsed.Round(time.Millisecond))
}

// PrintBackends outputs the registered backends as a table.
func (p *Printer) PrintBackends(backends []BackendInfo) {
	t := p.newTable()
	t.AppendHeader(table.Row{"Backend", "Description", "Default"})
	for _, b := range backends {
		def := ""
		if b.Default {
			def = "yes"
		}
		t.AppendRow(table.Row{b.Name, b.Description, def})
	}
	t.Render()
}

// newTable returns a rounded table writing to p.out. Header and footer text is
// printed as given rather than upper-cased.
func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
