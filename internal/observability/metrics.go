package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	RenderCycles    prometheus.Counter
	RenderDuration  prometheus.Histogram
	FilteredRecords prometheus.Histogram
	ChartFailures   *prometheus.CounterVec // labels: chart

	DatasetRecords prometheus.Gauge
	DatasetLoaded  prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RenderCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hotspot",
			Name:      "render_cycles_total",
			Help:      "Total dashboard render cycles.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotspot",
			Name:      "render_duration_seconds",
			Help:      "Duration of one year-filter plus five-chart render cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FilteredRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotspot",
			Name:      "filtered_records",
			Help:      "Number of records matching the selected year per cycle.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		ChartFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotspot",
			Name:      "chart_failures_total",
			Help:      "Charts that failed to aggregate, by chart.",
		}, []string{"chart"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hotspot",
			Name:      "dataset_records",
			Help:      "Hotspot records held in memory.",
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hotspot",
			Name:      "dataset_loaded",
			Help:      "1 once the dataset is loaded, 0 before.",
		}),
	}

	prometheus.MustRegister(
		m.RenderCycles,
		m.RenderDuration,
		m.FilteredRecords,
		m.ChartFailures,
		m.DatasetRecords,
		m.DatasetLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registration to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RenderCycles:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hotspot", Name: "render_cycles_total"}),
		RenderDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hotspot", Name: "render_duration_seconds"}),
		FilteredRecords: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hotspot", Name: "filtered_records"}),
		ChartFailures:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hotspot", Name: "chart_failures_total"}, []string{"chart"}),
		DatasetRecords:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hotspot", Name: "dataset_records"}),
		DatasetLoaded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hotspot", Name: "dataset_loaded"}),
	}
}
