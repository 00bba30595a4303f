// Package audit is the monitor's own diagnostic trail. It records what the
// monitor did each tick (gate resets, dispatched notifications, degraded
// snapshots), complementary to the notification-log rows owned by the kiosk
// data service.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action identifies what happened.
type Action string

const (
	ActionGateReset          Action = "gate_reset"
	ActionDutySessionCleared Action = "duty_session_cleared"
	ActionNotificationSent   Action = "notification_sent"
	ActionNotificationFailed Action = "notification_failed"
	ActionSnapshotDegraded   Action = "snapshot_degraded"
	ActionTickAborted        Action = "tick_aborted"
)

// Event is one audit entry. Keep it transport-agnostic so stores can fan out.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	Action    Action
	// Subject is the entity involved: a loan ID, a snapshot source, an
	// officer name.
	Subject string
	// Recipient and Channel are set for notification events.
	Recipient string
	Channel   string
	// Decision is the outcome ("sent", "failed", "cleared").
	Decision string
	// Reason carries the error text for failure events.
	Reason string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
