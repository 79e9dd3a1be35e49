// Package metrics holds the prometheus collectors for the HTTP layer and
// the forecasting pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records pipeline stage executions.
type PipelineMetrics struct {
	stageRuns     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// NewPipelineMetrics registers the pipeline collectors on the provided
// registerer. If reg is nil, the default registerer is used. Collectors
// already registered are reused.
func NewPipelineMetrics(reg prometheus.Registerer) (*PipelineMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_stage_runs_total",
		Help: "Total number of forecasting stage executions",
	}, []string{"stage", "success"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forecast_stage_duration_seconds",
		Help:    "Execution time per forecasting stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PipelineMetrics{stageRuns: runs, stageDuration: duration}, nil
}

// ObserveStage records one stage execution. Safe on a nil receiver so the
// service can run without metrics wired (tests).
func (m *PipelineMetrics) ObserveStage(stage string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.stageRuns.WithLabelValues(stage, strconv.FormatBool(err == nil)).Inc()
	m.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}
