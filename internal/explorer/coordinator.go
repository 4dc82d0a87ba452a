package explorer

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
)

// Renderer receives derived views. Implementations are called synchronously
// while the engine is serialized and must not call back into the Engine.
type Renderer interface {
	RefreshYearLabel(year int)
	RefreshMap(incidents []domain.Incident)
	RefreshBarChart(causeCounts []domain.Count, year int)
	RefreshHeatmap(stateCounts []domain.Count, cause string, year int)
}

// Fanout delivers every refresh to each renderer in slice order.
type Fanout []Renderer

// RefreshYearLabel delivers the refresh to every renderer.
func (f Fanout) RefreshYearLabel(year int) {
	for _, r := range f {
		r.RefreshYearLabel(year)
	}
}

// RefreshMap delivers the refresh to every renderer.
func (f Fanout) RefreshMap(incidents []domain.Incident) {
	for _, r := range f {
		r.RefreshMap(incidents)
	}
}

// RefreshBarChart delivers the refresh to every renderer.
func (f Fanout) RefreshBarChart(causeCounts []domain.Count, year int) {
	for _, r := range f {
		r.RefreshBarChart(causeCounts, year)
	}
}

// RefreshHeatmap delivers the refresh to every renderer.
func (f Fanout) RefreshHeatmap(stateCounts []domain.Count, cause string, year int) {
	for _, r := range f {
		r.RefreshHeatmap(stateCounts, cause, year)
	}
}

// Coordinator recomputes the views affected by a selection change and pushes them.
type Coordinator struct {
	dataset  *domain.Dataset
	renderer Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewCoordinator creates a Coordinator over an immutable dataset.
func NewCoordinator(ds *domain.Dataset, r Renderer, logger *slog.Logger, metrics *observability.Metrics) *Coordinator {
	return &Coordinator{
		dataset:  ds,
		renderer: r,
		logger:   logger,
		metrics:  metrics,
	}
}

// YearChanged pushes the year label, map, and bar chart for sel.Year, then the
// heatmap when a cause is selected.
func (c *Coordinator) YearChanged(sel Selection) {
	start := time.Now()
	defer c.observe(start)

	incidents := c.dataset.FilterByYear(sel.Year)

	c.renderer.RefreshYearLabel(sel.Year)
	c.pushed("year_label")

	c.renderer.RefreshMap(incidents)
	c.pushed("map")

	c.renderer.RefreshBarChart(domain.CountByCause(incidents), sel.Year)
	c.pushed("bar_chart")

	if sel.HasCause() {
		c.pushHeatmap(sel)
	}

	c.logger.Debug("year views refreshed",
		"year", sel.Year,
		"incidents", len(incidents),
		"cause", sel.Cause,
	)
}

// CauseChanged pushes only the heatmap. Clearing the cause pushes an empty heatmap.
func (c *Coordinator) CauseChanged(sel Selection) {
	start := time.Now()
	defer c.observe(start)

	c.pushHeatmap(sel)
	c.logger.Debug("heatmap refreshed", "year", sel.Year, "cause", sel.Cause)
}

func (c *Coordinator) pushHeatmap(sel Selection) {
	counts := []domain.Count{}
	if sel.HasCause() {
		counts = c.dataset.StateCounts(sel.Year, sel.Cause)
	}
	c.renderer.RefreshHeatmap(counts, sel.Cause, sel.Year)
	c.pushed("heatmap")
}

func (c *Coordinator) pushed(view string) {
	c.metrics.ViewPushes.WithLabelValues(view).Inc()
}

func (c *Coordinator) observe(start time.Time) {
	c.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
}
