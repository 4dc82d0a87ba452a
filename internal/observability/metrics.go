package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the explorer.
type Metrics struct {
	DatasetIncidents prometheus.Gauge
	DatasetYears     prometheus.Gauge

	// Selection state transitions.
	Transitions *prometheus.CounterVec // labels: transition={set_year,set_cause,start_playback,stop_playback}, outcome={applied,noop,rejected}
	CurrentYear prometheus.Gauge

	// Playback scheduler.
	PlaybackTicks  *prometheus.CounterVec // labels: result={applied,cancelled,exhausted}
	PlaybackActive prometheus.Gauge

	// View coordinator.
	ViewPushes      *prometheus.CounterVec // labels: view={year_label,map,bar_chart,heatmap}
	RefreshDuration prometheus.Histogram

	// Downstream renderers and enrichment.
	PublishErrors  prometheus.Counter
	GeocodeLookups *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache   *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all explorer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.DatasetIncidents,
		m.DatasetYears,
		m.Transitions,
		m.CurrentYear,
		m.PlaybackTicks,
		m.PlaybackActive,
		m.ViewPushes,
		m.RefreshDuration,
		m.PublishErrors,
		m.GeocodeLookups,
		m.GeocodeCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so multiple
// tests can build their own instances without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetIncidents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_explorer",
			Name:      "dataset_incidents",
			Help:      "Number of incidents loaded into the dataset.",
		}),
		DatasetYears: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_explorer",
			Name:      "dataset_years",
			Help:      "Number of distinct years in the dataset.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_explorer",
			Name:      "selection_transitions_total",
			Help:      "Selection state transitions by kind and outcome.",
		}, []string{"transition", "outcome"}),
		CurrentYear: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_explorer",
			Name:      "selection_current_year",
			Help:      "Currently selected year.",
		}),
		PlaybackTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_explorer",
			Name:      "playback_ticks_total",
			Help:      "Playback ticks by result.",
		}, []string{"result"}),
		PlaybackActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_explorer",
			Name:      "playback_active",
			Help:      "1 while playback is running, 0 when stopped.",
		}),
		ViewPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_explorer",
			Name:      "view_pushes_total",
			Help:      "Derived views pushed to renderers, by view.",
		}, []string{"view"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_explorer",
			Name:      "refresh_duration_seconds",
			Help:      "Time to recompute and push the views affected by one transition.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_explorer",
			Name:      "publish_errors_total",
			Help:      "View refresh messages that failed to reach Kafka.",
		}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_explorer",
			Name:      "geocode_lookups_total",
			Help:      "Reverse geocoding lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_explorer",
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
