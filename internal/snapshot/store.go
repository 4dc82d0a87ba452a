// Package snapshot keeps the most recent derived view of every visual so that
// readers (the HTTP API) can fetch them without touching the engine.
package snapshot

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/jonboulle/clockwork"
)

// HeatmapColumns is the width of the state heatmap grid.
const HeatmapColumns = 10

// Marker is one incident prepared for the map layer.
type Marker struct {
	Year   int              `json:"year"`
	State  string           `json:"state,omitempty"`
	Lat    float64          `json:"lat"`
	Lon    float64          `json:"lon"`
	Size   float64          `json:"size"`
	Cause  string           `json:"cause"`
	Class  domain.SizeClass `json:"class"`
	Radius float64          `json:"radius"`
}

// MapView is the incident layer of the selected year.
type MapView struct {
	Markers   []Marker  `json:"markers"`
	Unplaced  int       `json:"unplaced"` // incidents without coordinates
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// BarChartView is the cause-frequency chart of the selected year.
type BarChartView struct {
	Year      int            `json:"year"`
	Bars      []domain.Count `json:"bars"`
	Max       int            `json:"max"`
	UpdatedAt time.Time      `json:"updated_at,omitzero"`
}

// HeatmapCell is one state square of the heatmap grid.
type HeatmapCell struct {
	State     string  `json:"state"`
	Count     int     `json:"count"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Intensity float64 `json:"intensity"` // count / max, 0..1
}

// HeatmapView is the per-state grid for the selected cause and year.
// Before any cause is selected it is empty with Max 1.
type HeatmapView struct {
	Cause     string        `json:"cause"`
	Year      int           `json:"year"`
	Label     string        `json:"label"`
	Cells     []HeatmapCell `json:"cells"`
	Max       int           `json:"max"`
	UpdatedAt time.Time     `json:"updated_at,omitzero"`
}

// Views is a copy of everything the renderers last received.
type Views struct {
	YearLabel int          `json:"year_label"`
	Map       MapView      `json:"map"`
	BarChart  BarChartView `json:"bar_chart"`
	Heatmap   HeatmapView  `json:"heatmap"`
}

// Store is a Renderer that records the latest push of every view.
// It is safe for concurrent use.
type Store struct {
	clock clockwork.Clock

	mu    sync.RWMutex
	views Views
}

// NewStore creates an empty Store. A nil clock uses real time.
func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock: clock,
		views: Views{
			Map:      MapView{Markers: []Marker{}},
			BarChart: BarChartView{Bars: []domain.Count{}, Max: 1},
			Heatmap:  HeatmapView{Cells: []HeatmapCell{}, Max: 1},
		},
	}
}

// Snapshot returns a deep copy of the latest views.
func (s *Store) Snapshot() Views {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.views
	v.Map.Markers = slices.Clone(v.Map.Markers)
	v.BarChart.Bars = slices.Clone(v.BarChart.Bars)
	v.Heatmap.Cells = slices.Clone(v.Heatmap.Cells)
	return v
}

// RefreshYearLabel implements explorer.Renderer.
func (s *Store) RefreshYearLabel(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.YearLabel = year
}

// RefreshMap implements explorer.Renderer.
func (s *Store) RefreshMap(incidents []domain.Incident) {
	markers := make([]Marker, 0, len(incidents))
	unplaced := 0
	for _, inc := range incidents {
		if !inc.HasCoords() {
			unplaced++
			continue
		}
		markers = append(markers, Marker{
			Year:   inc.Year,
			State:  inc.State,
			Lat:    inc.Geo.Lat,
			Lon:    inc.Geo.Lon,
			Size:   inc.Size,
			Cause:  inc.Cause,
			Class:  domain.ClassifySize(inc.Size),
			Radius: domain.MarkerRadius(inc.Size),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Map = MapView{Markers: markers, Unplaced: unplaced, UpdatedAt: s.clock.Now()}
}

// RefreshBarChart implements explorer.Renderer.
func (s *Store) RefreshBarChart(causeCounts []domain.Count, year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.BarChart = BarChartView{
		Year:      year,
		Bars:      slices.Clone(causeCounts),
		Max:       domain.MaxCount(causeCounts),
		UpdatedAt: s.clock.Now(),
	}
}

// RefreshHeatmap implements explorer.Renderer.
func (s *Store) RefreshHeatmap(stateCounts []domain.Count, cause string, year int) {
	maxCount := domain.MaxCount(stateCounts)
	cells := make([]HeatmapCell, len(stateCounts))
	for i, c := range stateCounts {
		cells[i] = HeatmapCell{
			State:     c.Key,
			Count:     c.Count,
			Row:       i / HeatmapColumns,
			Col:       i % HeatmapColumns,
			Intensity: float64(c.Count) / float64(maxCount),
		}
	}

	label := ""
	if cause != domain.NoCause {
		label = fmt.Sprintf("Selected Cause: %s (%d)", cause, year)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.views.Heatmap = HeatmapView{
		Cause:     cause,
		Year:      year,
		Label:     label,
		Cells:     cells,
		Max:       maxCount,
		UpdatedAt: s.clock.Now(),
	}
}
