package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExceptions(t *testing.T) {
	table := DefaultExceptions()

	assert.True(t, table.Lookup(1959).ShortYear)
	assert.False(t, table.Lookup(1959).DuplicateTables)
	assert.True(t, table.Lookup(1960).DuplicateTables)
	assert.True(t, table.Lookup(1964).DuplicateTables)
	assert.Equal(t, YearException{}, table.Lookup(2020))
}

func TestExceptionTable_LookupNil(t *testing.T) {
	var table ExceptionTable
	assert.Equal(t, YearException{}, table.Lookup(1960))
}

func TestExceptionTable_Merge(t *testing.T) {
	base := DefaultExceptions()
	extra := ExceptionTable{
		2013: {ShortYear: true},
		1960: {},
	}

	merged := base.Merge(extra)

	assert.True(t, merged.Lookup(2013).ShortYear)
	assert.False(t, merged.Lookup(1960).DuplicateTables, "override should replace the default rule")
	assert.True(t, merged.Lookup(1964).DuplicateTables)

	// Originals are untouched
	assert.True(t, base.Lookup(1960).DuplicateTables)
	_, ok := base[2013]
	assert.False(t, ok)
}
