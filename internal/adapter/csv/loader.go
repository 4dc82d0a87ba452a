// Package csv loads incidents from a CSV export of the FPA-FOD fire table.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
)

// Columns read from the header row. Extra columns are ignored.
var requiredColumns = []string{"FIRE_YEAR", "STATE", "LONGITUDE", "LATITUDE", "FIRE_SIZE", "STAT_CAUSE_DESCR"}

// Loader reads incidents from a CSV file.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a Loader for the file at path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Load opens the file and parses every row. Rows that fail validation are
// skipped with a warning; a missing column or unreadable file is an error.
func (l *Loader) Load() ([]domain.Incident, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Read(f, l.logger)
}

// Read parses CSV rows from r into incidents, preserving row order.
func Read(r io.Reader, logger *slog.Logger) ([]domain.Incident, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := colIdx[c]; !ok {
			return nil, fmt.Errorf("read csv header: missing column %s", c)
		}
	}

	get := func(row []string, col string) string {
		i := colIdx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var incidents []domain.Incident //nolint:prealloc // size depends on file contents
	skipped := 0
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}

		inc, err := domain.ParseRecord(domain.RawRecord{
			Year:      get(row, "FIRE_YEAR"),
			State:     get(row, "STATE"),
			Longitude: get(row, "LONGITUDE"),
			Latitude:  get(row, "LATITUDE"),
			Size:      get(row, "FIRE_SIZE"),
			Cause:     get(row, "STAT_CAUSE_DESCR"),
		})
		if err != nil {
			skipped++
			logger.Warn("skipping csv row", "line", line, "error", err)
			continue
		}
		incidents = append(incidents, inc)
	}

	logger.Info("csv dataset parsed", "incidents", len(incidents), "skipped", skipped)
	return incidents, nil
}
