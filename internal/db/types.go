package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a scrape run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	BaseURL     string     `json:"base_url"`
	Backend     string     `json:"backend"`
	Status      string     `json:"status"`
	RecordCount int        `json:"record_count"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
