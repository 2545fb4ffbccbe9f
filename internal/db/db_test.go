package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/unsc-scraper/internal/types"
)

func TestRunStatusConstants(t *testing.T) {
	statuses := []string{RunStatusRunning, RunStatusCompleted, RunStatusFailed}

	for _, status := range statuses {
		assert.NotEmpty(t, status, "status constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		BaseURL: "http://www.un.org/en/sc/documents/resolutions/",
		Backend: "goquery",
		Status:  RunStatusRunning,
	}

	assert.Equal(t, "goquery", run.Backend)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Zero(t, run.RecordCount)
	assert.Nil(t, run.CompletedAt)
}

func TestResolutionRows(t *testing.T) {
	runID := uuid.New()
	set := types.ResolutionSet{
		{Year: 2020, Symbol: "S/RES/2510 (2020)", Title: "Libya", URL: "http://www.un.org/a"},
		{Year: 2020, Symbol: "S/RES/2512 (2020)", Title: "Cyprus", URL: "http://www.un.org/b"},
	}

	rows := resolutionRows(runID, set)

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], len(resolutionColumns))
	assert.Equal(t, []any{runID, 0, 2020, "S/RES/2510 (2020)", "Libya", "http://www.un.org/a"}, rows[0])
	assert.Equal(t, 1, rows[1][1], "position follows scrape order")
}

func TestResolutionRows_Empty(t *testing.T) {
	assert.Empty(t, resolutionRows(uuid.New(), nil))
}
