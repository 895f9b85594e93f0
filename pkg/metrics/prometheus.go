package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecastsServed *prometheus.CounterVec
	trainingsTotal  *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	droppedRows     prometheus.Counter
	lastTrainedAt   prometheus.Gauge
	trainedRows     prometheus.Gauge
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salescast_forecasts_served_total",
				Help: "Total number of forecast results served",
			},
			[]string{"source"},
		),
		trainingsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salescast_trainings_total",
				Help: "Total number of model training runs",
			},
			[]string{"source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salescast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"kind"},
		),
		droppedRows: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "salescast_dropped_rows_total",
				Help: "Input rows dropped during schema resolution",
			},
		),
		lastTrainedAt: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "salescast_last_trained_timestamp_seconds",
				Help: "Unix time of the most recent successful training",
			},
		),
		trainedRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "salescast_trained_rows",
				Help: "Observations in the most recently trained series",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salescast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordForecastServed records a served forecast result.
func (r *Recorder) RecordForecastServed(source string) {
	r.forecastsServed.WithLabelValues(source).Inc()
}

// RecordTraining records a successful model training run.
func (r *Recorder) RecordTraining(source string, rows int) {
	r.trainingsTotal.WithLabelValues(source).Inc()
	r.lastTrainedAt.Set(float64(time.Now().Unix()))
	r.trainedRows.Set(float64(rows))
}

// RecordError records an error occurrence by kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordDroppedRows records rows discarded during schema resolution.
func (r *Recorder) RecordDroppedRows(n int) {
	if n > 0 {
		r.droppedRows.Add(float64(n))
	}
}
