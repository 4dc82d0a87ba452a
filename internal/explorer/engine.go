package explorer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
)

// Engine owns the selection state and serializes every transition, playback
// tick, and the view pushes they cause. Validation happens before any field is
// written, so a rejected transition leaves state and views untouched.
type Engine struct {
	dataset   *domain.Dataset
	coord     *Coordinator
	scheduler *Scheduler
	logger    *slog.Logger
	metrics   *observability.Metrics
	maxYear   int
	rendered  atomic.Bool

	mu      sync.Mutex
	sel     Selection
	session uint64 // id of the running play session, 0 when stopped
	lastID  uint64
	ticks   int // ticks handled in the running session
}

// New creates an Engine with currentYear = minYear, no cause, and playback stopped.
// It returns domain.ErrEmptyDataset when the dataset has no year domain.
func New(ds *domain.Dataset, r Renderer, scheduler *Scheduler, logger *slog.Logger, metrics *observability.Metrics) (*Engine, error) {
	minYear, maxYear, ok := ds.YearDomain()
	if !ok {
		return nil, domain.ErrEmptyDataset
	}

	metrics.DatasetIncidents.Set(float64(ds.Len()))
	metrics.DatasetYears.Set(float64(len(ds.Years())))
	metrics.CurrentYear.Set(float64(minYear))

	return &Engine{
		dataset:   ds,
		coord:     NewCoordinator(ds, r, logger, metrics),
		scheduler: scheduler,
		logger:    logger,
		metrics:   metrics,
		maxYear:   maxYear,
		sel:       Selection{Year: minYear, Cause: domain.NoCause, Playback: Stopped},
	}, nil
}

// Dataset returns the immutable dataset the engine derives views from.
func (e *Engine) Dataset() *domain.Dataset { return e.dataset }

// Render pushes the views of the current selection. Call it once after wiring
// renderers to paint the initial state; the heatmap is included only when a
// cause is selected.
func (e *Engine) Render() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.coord.YearChanged(e.sel)
	e.rendered.Store(true)
}

// CheckReadiness returns nil once the initial views have been pushed.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.rendered.Load() {
		return errors.New("initial views have not been rendered yet")
	}
	return nil
}

// Selection returns a snapshot of the selection state.
func (e *Engine) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel
}

// IsPlaying reports whether playback is running.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Playing()
}

// SetYear selects a year and refreshes the map, bar chart, and (with a cause
// selected) the heatmap. Years outside the dataset domain are refused with
// *domain.OutOfRangeError, never clamped.
func (e *Engine) SetYear(year int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.dataset.CheckYear(year); err != nil {
		e.metrics.Transitions.WithLabelValues("set_year", "rejected").Inc()
		e.logger.Warn("set year rejected", "year", year, "error", err)
		return err
	}

	e.applyYearLocked(year)
	e.metrics.Transitions.WithLabelValues("set_year", "applied").Inc()
	return nil
}

// SetCause selects a cause, or clears the selection with domain.NoCause, and
// refreshes only the heatmap. Causes absent from the whole dataset are refused
// with *domain.UnknownCauseError.
func (e *Engine) SetCause(cause string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cause != domain.NoCause && !e.dataset.HasCause(cause) {
		err := &domain.UnknownCauseError{Cause: cause}
		e.metrics.Transitions.WithLabelValues("set_cause", "rejected").Inc()
		e.logger.Warn("set cause rejected", "cause", cause, "error", err)
		return err
	}

	e.sel.Cause = cause
	e.metrics.Transitions.WithLabelValues("set_cause", "applied").Inc()
	e.coord.CauseChanged(e.sel)
	return nil
}

// StartPlayback begins advancing the year on every scheduler tick. It is a
// no-op while playback is already running.
func (e *Engine) StartPlayback() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel.Playing() {
		e.metrics.Transitions.WithLabelValues("start_playback", "noop").Inc()
		return
	}

	e.lastID++
	session := e.lastID
	e.session = session
	e.ticks = 0
	e.sel.Playback = Playing
	e.scheduler.Start(func() { e.tick(session) })

	e.metrics.PlaybackActive.Set(1)
	e.metrics.Transitions.WithLabelValues("start_playback", "applied").Inc()
	e.logger.Info("playback started",
		"year", e.sel.Year,
		"max_year", e.maxYear,
		"interval", e.scheduler.Interval(),
	)
}

// StopPlayback cancels playback and any pending tick. It is always safe to call.
func (e *Engine) StopPlayback() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.sel.Playing() {
		e.metrics.Transitions.WithLabelValues("stop_playback", "noop").Inc()
		return
	}
	e.stopLocked()
	e.metrics.Transitions.WithLabelValues("stop_playback", "applied").Inc()
	e.logger.Info("playback stopped", "year", e.sel.Year)
}

// Close stops playback and waits for the scheduler to go idle.
func (e *Engine) Close() {
	e.StopPlayback()
	e.scheduler.Wait()
}

// tick applies one playback step for the given session. The first tick of a
// session re-applies the current year, later ticks advance it by one; once the
// target passes the last year, playback stops instead of wrapping around.
func (e *Engine) tick(session uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if session != e.session || !e.sel.Playing() {
		e.metrics.PlaybackTicks.WithLabelValues("cancelled").Inc()
		return
	}

	target := e.sel.Year
	if e.ticks > 0 {
		target++
	}
	e.ticks++

	if target > e.maxYear {
		e.metrics.PlaybackTicks.WithLabelValues("exhausted").Inc()
		e.stopLocked()
		e.logger.Info("playback reached last year", "year", e.sel.Year)
		return
	}

	e.metrics.PlaybackTicks.WithLabelValues("applied").Inc()
	e.applyYearLocked(target)
}

func (e *Engine) applyYearLocked(year int) {
	e.sel.Year = year
	e.metrics.CurrentYear.Set(float64(year))
	e.coord.YearChanged(e.sel)
}

func (e *Engine) stopLocked() {
	e.sel.Playback = Stopped
	e.session = 0
	e.ticks = 0
	e.scheduler.Stop()
	e.metrics.PlaybackActive.Set(0)
}
