package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/barron/scheduler/pkg/application/dto"
)

// MetricsCollector owns the scheduler's Prometheus registry. Every metric is
// registered on a private registry so tests and embedded use never collide
// with the global default.
type MetricsCollector struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	lateOrders    *prometheus.GaugeVec
	horizonHours  *prometheus.GaugeVec
	scheduleItems *prometheus.GaugeVec
}

// NewMetricsCollector creates a collector with all scheduler metrics
// registered.
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Completed scheduling runs by engine mode and outcome",
		},
		[]string{"mode", "status"},
	)

	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_run_duration_seconds",
			Help:    "Wall time spent computing a schedule",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"mode"},
	)

	lateOrders := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedule_late_orders",
			Help: "Late orders in the most recent run",
		},
		[]string{"mode"},
	)

	horizonHours := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedule_horizon_hours",
			Help: "Makespan of the most recent run in schedule hours",
		},
		[]string{"mode"},
	)

	scheduleItems := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedule_items",
			Help: "Schedule items emitted by the most recent run",
		},
		[]string{"mode", "type"},
	)

	registry.MustRegister(runsTotal, runDuration, lateOrders, horizonHours, scheduleItems)

	return &MetricsCollector{
		registry:      registry,
		runsTotal:     runsTotal,
		runDuration:   runDuration,
		lateOrders:    lateOrders,
		horizonHours:  horizonHours,
		scheduleItems: scheduleItems,
	}
}

// Registry exposes the private registry for the metrics HTTP handler.
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// RecordRun records a finished scheduling run.
func (mc *MetricsCollector) RecordRun(mode string, result *dto.ScheduleResult, elapsed time.Duration) {
	mc.runsTotal.WithLabelValues(mode, "ok").Inc()
	mc.runDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	mc.lateOrders.WithLabelValues(mode).Set(float64(len(result.Summary.Late)))
	mc.horizonHours.WithLabelValues(mode).Set(result.Summary.HorizonUsed)
	mc.scheduleItems.WithLabelValues(mode, "production").Set(float64(result.Summary.TotalProduction))
	mc.scheduleItems.WithLabelValues(mode, "setup").Set(float64(result.Summary.TotalSetups))
}

// RecordFailure records a run that ended in an error.
func (mc *MetricsCollector) RecordFailure(mode string) {
	mc.runsTotal.WithLabelValues(mode, "error").Inc()
}
