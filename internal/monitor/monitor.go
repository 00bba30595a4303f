// Package monitor runs the two periodic jobs that make up the overdue
// engine: a fast poll that tracks duty-session presence and a slow scan that
// gates operating hours, snapshots the data service, evaluates overdue rules
// and dispatches notifications.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"deskwatch/internal/deskapi"
	"deskwatch/internal/gate"
	"deskwatch/internal/notify"
	"deskwatch/internal/platform/metrics"
	"deskwatch/internal/statestore"
	"deskwatch/pkg/platform/audit"
)

// Tick outcomes as reported in metrics and /status.
const (
	OutcomeCompleted = "completed"
	OutcomeDisabled  = "disabled"
	OutcomeReset     = "reset"
	OutcomeAborted   = "aborted"
	OutcomeSkipped   = "skipped"
)

// API is the read surface the monitor needs from the kiosk data service.
type API interface {
	ListAssetLoans(ctx context.Context) ([]deskapi.AssetLoan, error)
	ListKeyLoans(ctx context.Context) ([]deskapi.KeyLoan, error)
	ListHosts(ctx context.Context) ([]deskapi.Host, error)
	GetSettings(ctx context.Context) (*deskapi.Settings, error)
}

// Clock supplies the current time, injected for testability.
type Clock func() time.Time

// Status is a point-in-time view for the ops endpoint.
type Status struct {
	OnDuty          bool      `json:"onDuty"`
	LastTickOutcome string    `json:"lastTickOutcome"`
	LastTickAt      time.Time `json:"lastTickAt"`
}

// Monitor owns both periodic jobs. Exactly one overdue scan is in flight at a
// time; a tick that fires while one is running is skipped.
type Monitor struct {
	api        API
	store      statestore.Store
	gate       *gate.Gate
	dispatcher *notify.Dispatcher

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor audit.Publisher
	clock   Clock
	tracer  trace.Tracer

	fastInterval time.Duration
	slowInterval time.Duration

	inFlight atomic.Bool
	onDuty   atomic.Bool

	mu       sync.Mutex
	lastTick Status
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(mx *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = mx
	}
}

// WithAuditPublisher enables the local audit trail.
func WithAuditPublisher(auditor audit.Publisher) Option {
	return func(m *Monitor) {
		m.auditor = auditor
	}
}

// WithClock sets the clock function for testability.
func WithClock(clock Clock) Option {
	return func(m *Monitor) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithIntervals overrides the fast and slow job intervals.
func WithIntervals(fast, slow time.Duration) Option {
	return func(m *Monitor) {
		if fast > 0 {
			m.fastInterval = fast
		}
		if slow > 0 {
			m.slowInterval = slow
		}
	}
}

// New constructs a Monitor.
func New(api API, store statestore.Store, g *gate.Gate, dispatcher *notify.Dispatcher, opts ...Option) (*Monitor, error) {
	if api == nil {
		return nil, fmt.Errorf("desk api is required")
	}
	if store == nil {
		return nil, fmt.Errorf("state store is required")
	}
	if g == nil {
		return nil, fmt.Errorf("gate is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	m := &Monitor{
		api:          api,
		store:        store,
		gate:         g,
		dispatcher:   dispatcher,
		clock:        time.Now,
		tracer:       otel.Tracer("deskwatch/monitor"),
		fastInterval: time.Second,
		slowInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Run blocks until the context is cancelled. The slow job runs once
// immediately, then on its interval; the fast job runs on its interval. An
// in-flight tick is not cancelled mid-run, it completes on its own.
func (m *Monitor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(m.fastInterval)
		defer ticker.Stop()

		m.refreshDuty(ctx)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				m.refreshDuty(ctx)
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(m.slowInterval)
		defer ticker.Stop()

		m.RunTick(ctx)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				m.RunTick(ctx)
			}
		}
	})

	return g.Wait()
}

// OnDuty reports whether a duty session was present at the last fast poll.
func (m *Monitor) OnDuty() bool {
	return m.onDuty.Load()
}

// Status returns the last tick outcome and the duty flag.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := m.lastTick
	status.OnDuty = m.onDuty.Load()
	return status
}

// RunTick executes one guarded overdue scan. It returns the tick outcome,
// OutcomeSkipped when another scan was already in flight.
func (m *Monitor) RunTick(ctx context.Context) string {
	if !m.inFlight.CompareAndSwap(false, true) {
		if m.metrics != nil {
			m.metrics.Ticks.WithLabelValues(OutcomeSkipped).Inc()
		}
		return OutcomeSkipped
	}
	defer m.inFlight.Store(false)

	start := m.clock()
	outcome, err := m.tick(ctx)
	elapsed := m.clock().Sub(start)

	if m.metrics != nil {
		m.metrics.ObserveTick(outcome, elapsed)
	}
	m.recordTick(outcome)

	if err != nil && m.logger != nil {
		m.logger.ErrorContext(ctx, "overdue scan failed", "outcome", outcome, "error", err)
	}
	return outcome
}

func (m *Monitor) refreshDuty(ctx context.Context) {
	session, err := m.store.DutySession(ctx)
	if err != nil {
		if m.logger != nil {
			m.logger.DebugContext(ctx, "duty session poll failed", "error", err)
		}
		return
	}
	m.setOnDuty(session != nil)
}

func (m *Monitor) setOnDuty(active bool) {
	m.onDuty.Store(active)
	if m.metrics != nil {
		m.metrics.SetOnDuty(active)
	}
}

func (m *Monitor) recordTick(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTick.LastTickOutcome = outcome
	m.lastTick.LastTickAt = m.clock()
}
