// Package sqlite loads incidents from the FPA-FOD SQLite distribution.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// firesQuery selects the explorer's columns from the FPA-FOD "Fires" table in rowid order.
const firesQuery = `SELECT FIRE_YEAR, STATE, LONGITUDE, LATITUDE, FIRE_SIZE, STAT_CAUSE_DESCR
	FROM Fires ORDER BY rowid`

// Loader reads incidents from a SQLite database file.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a Loader for the database at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load opens the database and returns every valid incident.
func (l *Loader) Load(ctx context.Context) ([]domain.Incident, error) {
	if _, err := os.Stat(l.path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", l.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	return Query(ctx, db, l.logger)
}

// Query reads the Fires table through an open handle.
func Query(ctx context.Context, db *sql.DB, logger *slog.Logger) ([]domain.Incident, error) {
	rows, err := db.QueryContext(ctx, firesQuery)
	if err != nil {
		return nil, fmt.Errorf("select fires: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incidents []domain.Incident
	skipped := 0
	rowNum := 0
	for rows.Next() {
		rowNum++
		// SQLite columns are dynamically typed, so every value is read as text and
		// goes through the same parsing rules as the CSV loader.
		var year, state, lon, lat, size, cause sql.NullString
		if err := rows.Scan(&year, &state, &lon, &lat, &size, &cause); err != nil {
			return nil, fmt.Errorf("scan fire row %d: %w", rowNum, err)
		}

		inc, err := domain.ParseRecord(domain.RawRecord{
			Year:      year.String,
			State:     state.String,
			Longitude: lon.String,
			Latitude:  lat.String,
			Size:      size.String,
			Cause:     cause.String,
		})
		if err != nil {
			skipped++
			logger.Warn("skipping fire row", "row", rowNum, "error", err)
			continue
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fires: %w", err)
	}

	logger.Info("sqlite dataset read", "incidents", len(incidents), "skipped", skipped)
	return incidents, nil
}
