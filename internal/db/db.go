// Package db provides PostgreSQL storage for scraped resolutions.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scrape_runs (
	id           UUID PRIMARY KEY,
	base_url     TEXT NOT NULL,
	backend      TEXT NOT NULL,
	status       TEXT NOT NULL,
	record_count INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS resolutions (
	run_id   UUID NOT NULL REFERENCES scrape_runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	year     INTEGER NOT NULL,
	symbol   TEXT NOT NULL,
	title    TEXT NOT NULL,
	url      TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_resolutions_year ON resolutions(year);
`

// EnsureSchema creates the scrape_runs and resolutions tables when missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CreateRun creates a new scrape run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, baseURL, backend string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO scrape_runs (id, base_url, backend, status)
		 VALUES ($1, $2, $3, $4)`,
		id, baseURL, backend, RunStatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a scrape run as finished with status and its record count
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, count int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE scrape_runs SET status = $1, record_count = $2, completed_at = NOW() WHERE id = $3`,
		status, count, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a scrape run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, base_url, backend, status, record_count, created_at, completed_at
		 FROM scrape_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.BaseURL, &run.Backend, &run.Status, &run.RecordCount, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}
