package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// wind check pipeline.
type Metrics struct {
	ChecksTotal      *prometheus.CounterVec // labels: outcome={data,no_data}
	CheckDuration    prometheus.Histogram
	FetchDuration    prometheus.Histogram
	SchedulerRunning prometheus.Gauge

	// Extraction metrics.
	FieldsExtracted *prometheus.CounterVec // labels: field, strategy
	ParseFailures   *prometheus.CounterVec // labels: field

	// Notification metrics.
	Notifications *prometheus.CounterVec // labels: channel, outcome={success,error}

	// Last observation gauges, for dashboards scraping /metrics.
	WindSpeedKnots prometheus.Gauge
	WindGustKnots  prometheus.Gauge
	BeaufortScale  prometheus.Gauge
	AboveThreshold prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ChecksTotal,
		m.CheckDuration,
		m.FetchDuration,
		m.SchedulerRunning,
		m.FieldsExtracted,
		m.ParseFailures,
		m.Notifications,
		m.WindSpeedKnots,
		m.WindGustKnots,
		m.BeaufortScale,
		m.AboveThreshold,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windwatch",
			Name:      "checks_total",
			Help:      "Completed check cycles by outcome.",
		}, []string{"outcome"}),
		CheckDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "windwatch",
			Name:      "check_duration_seconds",
			Help:      "Duration of a complete fetch-extract-notify cycle.",
			Buckets:   []float64{1, 5, 10, 15, 20, 30, 45, 60},
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "windwatch",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the headless page fetch including the settle delay.",
			Buckets:   []float64{1, 5, 10, 15, 20, 30, 45},
		}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windwatch",
			Name:      "scheduler_running",
			Help:      "1 when the check scheduler is active, 0 when shut down.",
		}),
		FieldsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windwatch",
			Name:      "fields_extracted_total",
			Help:      "Successful field extractions by field and winning strategy.",
		}, []string{"field", "strategy"}),
		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windwatch",
			Name:      "parse_failures_total",
			Help:      "Extracted field texts that contained no parseable measurement.",
		}, []string{"field"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windwatch",
			Name:      "notifications_total",
			Help:      "Notification attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
		WindSpeedKnots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windwatch",
			Name:      "wind_speed_knots",
			Help:      "Wind speed from the most recent successful check.",
		}),
		WindGustKnots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windwatch",
			Name:      "wind_gust_knots",
			Help:      "Wind gust from the most recent successful check.",
		}),
		BeaufortScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windwatch",
			Name:      "beaufort_scale",
			Help:      "Beaufort band from the most recent successful check.",
		}),
		AboveThreshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windwatch",
			Name:      "above_threshold",
			Help:      "1 when the last observed wind speed met or exceeded the threshold.",
		}),
	}
}
