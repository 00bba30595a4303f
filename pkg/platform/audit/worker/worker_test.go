package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "deskwatch/pkg/platform/audit"
	auditmemory "deskwatch/pkg/platform/audit/store/memory"
	"deskwatch/pkg/platform/audit/worker"
)

func TestWorkerPersistsQueuedEvents(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	publisher := audit.NewChannelPublisher(8)
	w := worker.NewWorker(store, publisher.Inbox(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	publisher.Emit(ctx, audit.Event{Action: audit.ActionGateReset, Subject: "R. Adeyemi"})
	publisher.Emit(ctx, audit.Event{Action: audit.ActionNotificationSent, Subject: "al-1"})

	require.Eventually(t, func() bool {
		events, err := store.ListAll(context.Background())
		return err == nil && len(events) == 2
	}, 2*time.Second, 10*time.Millisecond)

	events, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, audit.ActionGateReset, events[0].Action)
	assert.Equal(t, audit.ActionNotificationSent, events[1].Action)

	cancel()
	<-done
}

type failingStore struct {
	calls atomic.Int32
}

func (s *failingStore) Append(context.Context, audit.Event) error {
	s.calls.Add(1)
	return errors.New("disk full")
}

func TestWorkerSurvivesPersistFailures(t *testing.T) {
	store := &failingStore{}
	publisher := audit.NewChannelPublisher(8)
	w := worker.NewWorker(store, publisher.Inbox(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	publisher.Emit(ctx, audit.Event{Action: audit.ActionTickAborted})
	publisher.Emit(ctx, audit.Event{Action: audit.ActionTickAborted})

	// Both events are attempted even though the first append failed.
	require.Eventually(t, func() bool { return store.calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
