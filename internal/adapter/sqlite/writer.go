package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
)

const createFires = `CREATE TABLE Fires (
	OBJECTID INTEGER PRIMARY KEY,
	FIRE_YEAR INTEGER NOT NULL,
	STAT_CAUSE_DESCR TEXT NOT NULL CHECK (STAT_CAUSE_DESCR <> ''),
	FIRE_SIZE REAL,
	LATITUDE REAL,
	LONGITUDE REAL,
	STATE TEXT
)`

const insertFire = `INSERT INTO Fires (FIRE_YEAR, STAT_CAUSE_DESCR, FIRE_SIZE, LATITUDE, LONGITUDE, STATE)
	VALUES (?, ?, ?, ?, ?, ?)`

// Export writes incidents to a new database at path with the same Fires
// layout the Loader reads. An existing file is never overwritten, and a
// failed export leaves no file behind.
func Export(ctx context.Context, path string, incidents []domain.Incident) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("export sqlite: %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("export sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	if err := writeFires(ctx, db, incidents); err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return err
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

// writeFires creates the Fires table and inserts every incident in one transaction.
func writeFires(ctx context.Context, db *sql.DB, incidents []domain.Incident) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createFires); err != nil {
		return fmt.Errorf("create fires table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertFire)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, inc := range incidents {
		var lat, lon sql.NullFloat64
		if inc.HasCoords() {
			lat = sql.NullFloat64{Float64: inc.Geo.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: inc.Geo.Lon, Valid: true}
		}
		state := sql.NullString{String: inc.State, Valid: inc.State != ""}
		if _, err := stmt.ExecContext(ctx, inc.Year, inc.Cause, inc.Size, lat, lon, state); err != nil {
			return fmt.Errorf("insert fire %d: %w", i, err)
		}
	}
	return tx.Commit()
}
