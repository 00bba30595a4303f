package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher is the interface domain code emits through.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

// DropFunc is called when an event cannot be queued.
type DropFunc func()

// ChannelPublisher queues events onto a buffered channel drained by a Worker.
// Emit never blocks the tick: when the inbox is full the event is dropped and
// counted instead.
type ChannelPublisher struct {
	inbox  chan Event
	logger *slog.Logger
	onDrop DropFunc
}

// PublisherOption configures the ChannelPublisher.
type PublisherOption func(*ChannelPublisher)

// WithLogger sets a logger for drop reporting.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *ChannelPublisher) {
		p.logger = logger
	}
}

// WithDropFunc registers a callback for dropped events (metrics hook).
func WithDropFunc(fn DropFunc) PublisherOption {
	return func(p *ChannelPublisher) {
		p.onDrop = fn
	}
}

// NewChannelPublisher creates a publisher with the given inbox capacity.
func NewChannelPublisher(capacity int, opts ...PublisherOption) *ChannelPublisher {
	p := &ChannelPublisher{
		inbox: make(chan Event, capacity),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inbox exposes the receive side for the Worker.
func (p *ChannelPublisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit queues an event, filling in ID and timestamp when unset.
func (p *ChannelPublisher) Emit(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case p.inbox <- event:
	default:
		if p.onDrop != nil {
			p.onDrop()
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, event dropped", "action", event.Action)
		}
	}
}
