package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  ResolutionRecord
		wantErr bool
	}{
		{
			name:   "valid record",
			record: ResolutionRecord{Year: 2020, Symbol: "S/RES/2510 (2020)", Title: "Libya", URL: "http://www.un.org/en/ga/search/view_doc.asp?symbol=S/RES/2510(2020)"},
		},
		{
			name:   "empty symbol is allowed",
			record: ResolutionRecord{Year: 1959, URL: "http://example.com/doc"},
		},
		{
			name:    "relative url",
			record:  ResolutionRecord{Year: 2020, Symbol: "S/RES/1", URL: "doc.asp?symbol=1"},
			wantErr: true,
		},
		{
			name:    "missing url",
			record:  ResolutionRecord{Year: 2020, Symbol: "S/RES/1"},
			wantErr: true,
		},
		{
			name:    "zero year",
			record:  ResolutionRecord{Symbol: "S/RES/1", URL: "http://example.com/doc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestYearEntry_Validate(t *testing.T) {
	valid := YearEntry{Year: 1977, URL: "http://www.un.org/en/sc/documents/resolutions/1977.shtml"}
	assert.NoError(t, valid.Validate())

	negative := YearEntry{Year: -1, URL: "http://www.un.org/en/sc/documents/resolutions/1977.shtml"}
	assert.Error(t, negative.Validate())
}

func TestResolutionSet_CountByYear(t *testing.T) {
	set := ResolutionSet{
		{Year: 1959, Symbol: "a"},
		{Year: 2020, Symbol: "b"},
		{Year: 2020, Symbol: "c"},
		{Year: 1964, Symbol: "d"},
		{Year: 1964, Symbol: "e"},
		{Year: 1964, Symbol: "f"},
	}

	counts := set.CountByYear()
	assert.Equal(t, []YearCount{
		{Year: 1959, Count: 1},
		{Year: 2020, Count: 2},
		{Year: 1964, Count: 3},
	}, counts)
}

func TestResolutionSet_CountByYear_Empty(t *testing.T) {
	assert.Empty(t, ResolutionSet{}.CountByYear())
}
