// Package gate enforces the facility operating hours. During locked hours it
// clears any surviving duty session and records that today's reset happened,
// so no authenticated session outlives the day it was opened.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deskwatch/internal/statestore"
)

// State of the facility, derived from wall-clock time alone.
type State string

const (
	StateOpen   State = "open"
	StateLocked State = "locked"
)

// The facility is locked from midnight until this hour.
const openingHour = 5

// StateAt derives the operating state for a point in time. It is recomputed
// every tick, never stored.
func StateAt(now time.Time) State {
	if now.Hour() < openingHour {
		return StateLocked
	}
	return StateOpen
}

// Clock supplies the current time, injected for testability.
type Clock func() time.Time

// Result reports what one gate check did.
type Result struct {
	State State
	// MarkerWritten is true when today's reset date was recorded.
	MarkerWritten bool
	// SessionCleared is true when a duty session was actually removed. The
	// caller must discard its transient state and skip the rest of the tick.
	SessionCleared bool
}

// Gate runs the locked-hours transition against the operating-state store.
type Gate struct {
	store  statestore.Store
	logger *slog.Logger
	clock  Clock
}

// Option configures the Gate.
type Option func(*Gate)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithClock sets the clock function for testability.
func WithClock(clock Clock) Option {
	return func(g *Gate) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// New constructs a Gate.
func New(store statestore.Store, opts ...Option) (*Gate, error) {
	if store == nil {
		return nil, fmt.Errorf("state store is required")
	}

	g := &Gate{
		store: store,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Check runs once at the start of every tick. Outside locked hours it is a
// no-op. Inside locked hours it clears the duty session and writes the reset
// marker, at most once per calendar date.
func (g *Gate) Check(ctx context.Context) (Result, error) {
	now := g.clock()
	res := Result{State: StateAt(now)}
	if res.State == StateOpen {
		return res, nil
	}

	today := now.Format("2006-01-02")

	lastReset, err := g.store.ResetDate(ctx)
	if err != nil {
		return res, fmt.Errorf("read reset date: %w", err)
	}
	session, err := g.store.DutySession(ctx)
	if err != nil {
		return res, fmt.Errorf("read duty session: %w", err)
	}

	if lastReset == today && session == nil {
		// Already reset today and nothing to clear.
		return res, nil
	}

	cleared, err := g.store.ClearDutySession(ctx)
	if err != nil {
		return res, fmt.Errorf("clear duty session: %w", err)
	}
	res.SessionCleared = cleared

	if lastReset != today {
		if err := g.store.SetResetDate(ctx, today); err != nil {
			return res, fmt.Errorf("write reset date: %w", err)
		}
		res.MarkerWritten = true
	}

	if g.logger != nil && (res.MarkerWritten || res.SessionCleared) {
		officer := ""
		if session != nil {
			officer = session.Officer
		}
		g.logger.InfoContext(ctx, "locked-hours reset applied",
			"date", today,
			"marker_written", res.MarkerWritten,
			"session_cleared", res.SessionCleared,
			"officer", officer,
		)
	}

	return res, nil
}
