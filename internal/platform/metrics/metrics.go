package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the monitor.
type Metrics struct {
	Ticks               *prometheus.CounterVec
	TickDuration        prometheus.Histogram
	ViolationsDetected  *prometheus.CounterVec
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	GateResets          prometheus.Counter
	SnapshotFailures    *prometheus.CounterVec
	ChatMirrorFailures  prometheus.Counter
	AuditDropped        prometheus.Counter
	OnDuty              prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Ticks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "deskwatch_ticks_total",
			Help: "Total overdue-scan ticks by outcome (completed, aborted, skipped, reset)",
		}, []string{"outcome"}),
		TickDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "deskwatch_tick_duration_seconds",
			Help:    "Wall-clock duration of overdue-scan ticks",
			Buckets: prometheus.DefBuckets,
		}),
		ViolationsDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "deskwatch_violations_detected_total",
			Help: "Total overdue violations detected by rule kind",
		}, []string{"kind"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deskwatch_notifications_sent_total",
			Help: "Total notification records persisted successfully",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deskwatch_notifications_failed_total",
			Help: "Total notification record persist failures",
		}),
		GateResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deskwatch_gate_resets_total",
			Help: "Total locked-hours resets that cleared a duty session",
		}),
		SnapshotFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "deskwatch_snapshot_failures_total",
			Help: "Total snapshot fetch failures by source (assets, keys, hosts, settings)",
		}, []string{"source"}),
		ChatMirrorFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deskwatch_chat_mirror_failures_total",
			Help: "Total failures mirroring alerts to the chat channel",
		}),
		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deskwatch_audit_dropped_total",
			Help: "Total audit events dropped because the inbox was full",
		}),
		OnDuty: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "deskwatch_on_duty",
			Help: "Whether a duty session is currently active (1) or not (0)",
		}),
	}
}

// ObserveTick records one tick outcome with its duration.
func (m *Metrics) ObserveTick(outcome string, d time.Duration) {
	m.Ticks.WithLabelValues(outcome).Inc()
	m.TickDuration.Observe(d.Seconds())
}

// IncViolations adds detected violations for a rule kind.
func (m *Metrics) IncViolations(kind string, n int) {
	m.ViolationsDetected.WithLabelValues(kind).Add(float64(n))
}

// IncSnapshotFailure records a failed snapshot fetch for one source.
func (m *Metrics) IncSnapshotFailure(source string) {
	m.SnapshotFailures.WithLabelValues(source).Inc()
}

// SetOnDuty updates the duty-session gauge.
func (m *Metrics) SetOnDuty(active bool) {
	if active {
		m.OnDuty.Set(1)
		return
	}
	m.OnDuty.Set(0)
}
