package types

// YearException describes how a known-irregular year page deviates from the usual layout.
type YearException struct {
	// DuplicateTables means the page content is repeated, so more than one
	// content table is expected. Only the first is used.
	DuplicateTables bool `json:"duplicate_tables,omitempty" yaml:"duplicate_tables,omitempty"`
	// ShortYear disables the minimum record count for the year.
	ShortYear bool `json:"short_year,omitempty" yaml:"short_year,omitempty"`
}

// ExceptionTable maps a year to its exception rule.
type ExceptionTable map[int]YearException

// DefaultExceptions returns the irregular years known on the live site.
func DefaultExceptions() ExceptionTable {
	return ExceptionTable{
		1959: {ShortYear: true},       // only one resolution that year
		1960: {DuplicateTables: true}, // whole page repeated twice
		1964: {DuplicateTables: true},
	}
}

// Lookup returns the exception for year, or the zero value when the year is regular.
func (t ExceptionTable) Lookup(year int) YearException {
	if t == nil {
		return YearException{}
	}
	return t[year]
}

// Merge returns a new table holding t's entries overridden by other's.
func (t ExceptionTable) Merge(other ExceptionTable) ExceptionTable {
	result := make(ExceptionTable, len(t)+len(other))
	for year, rule := range t {
		result[year] = rule
	}
	for year, rule := range other {
		result[year] = rule
	}
	return result
}
