package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/unsc-scraper/internal/types"
)

var resolutionColumns = []string{"run_id", "position", "year", "symbol", "title", "url"}

// SaveResolutions bulk-inserts set for runID, keeping the scrape order in position.
func (db *DB) SaveResolutions(ctx context.Context, runID uuid.UUID, set types.ResolutionSet) (int64, error) {
	if len(set) == 0 {
		return 0, nil
	}
	n, err := db.pool.CopyFrom(ctx,
		pgx.Identifier{"resolutions"},
		resolutionColumns,
		pgx.CopyFromRows(resolutionRows(runID, set)),
	)
	if err != nil {
		return n, fmt.Errorf("failed to save resolutions: %w", err)
	}
	return n, nil
}

// ListResolutions returns the records stored for runID in scrape order.
func (db *DB) ListResolutions(ctx context.Context, runID uuid.UUID) (types.ResolutionSet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT year, symbol, title, url FROM resolutions WHERE run_id = $1 ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	defer rows.Close()

	var set types.ResolutionSet
	for rows.Next() {
		var rec types.ResolutionRecord
		if err := rows.Scan(&rec.Year, &rec.Symbol, &rec.Title, &rec.URL); err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}
		set = append(set, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	return set, nil
}

func resolutionRows(runID uuid.UUID, set types.ResolutionSet) [][]any {
	rows := make([][]any, len(set))
	for i, rec := range set {
		rows[i] = []any{runID, i, rec.Year, rec.Symbol, rec.Title, rec.URL}
	}
	return rows
}
