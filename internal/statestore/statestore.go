// Package statestore persists the two operating-state markers shared with the
// kiosk frontend: the date of the last locked-hours reset and the active duty
// session. Typed accessors keep gate logic testable against a fake store.
package statestore

import (
	"context"
	"time"
)

// DutySession marks an officer as signed on at a station. Created by login
// flows outside the monitor; the monitor only reads it and clears it when the
// gate fires during locked hours.
type DutySession struct {
	Officer   string    `json:"name"`
	Station   string    `json:"station"`
	StartedAt time.Time `json:"startedAt"`
}

// Store exposes the operating-state markers.
type Store interface {
	// ResetDate returns the date (YYYY-MM-DD) of the last locked-hours reset,
	// or "" if none has been recorded.
	ResetDate(ctx context.Context) (string, error)

	// SetResetDate records the date of a locked-hours reset.
	SetResetDate(ctx context.Context, date string) error

	// DutySession returns the active duty session, or nil when none exists.
	DutySession(ctx context.Context) (*DutySession, error)

	// PutDutySession records a duty session.
	PutDutySession(ctx context.Context, session DutySession) error

	// ClearDutySession removes the duty session and reports whether one was
	// present.
	ClearDutySession(ctx context.Context) (bool, error)
}
