package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskwatch/internal/statestore"
)

// countingStore tracks marker writes so idempotency is observable.
type countingStore struct {
	*statestore.InMemoryStore
	setDateCalls int
}

func newCountingStore() *countingStore {
	return &countingStore{InMemoryStore: statestore.NewInMemoryStore()}
}

func (s *countingStore) SetResetDate(ctx context.Context, date string) error {
	s.setDateCalls++
	return s.InMemoryStore.SetResetDate(ctx, date)
}

// failingStore returns an error from every read.
type failingStore struct {
	*statestore.InMemoryStore
}

func (s failingStore) ResetDate(context.Context) (string, error) {
	return "", errors.New("store unavailable")
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

var (
	lockedTime = time.Date(2025, 3, 14, 2, 30, 0, 0, time.UTC)
	openTime   = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
)

func TestStateAt(t *testing.T) {
	assert.Equal(t, StateLocked, StateAt(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, StateLocked, StateAt(time.Date(2025, 3, 14, 4, 59, 0, 0, time.UTC)))
	assert.Equal(t, StateOpen, StateAt(time.Date(2025, 3, 14, 5, 0, 0, 0, time.UTC)))
	assert.Equal(t, StateOpen, StateAt(time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)))
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("open hours are a no-op even with a session present", func(t *testing.T) {
		store := newCountingStore()
		require.NoError(t, store.PutDutySession(ctx, statestore.DutySession{Officer: "R. Adeyemi"}))

		g, err := New(store, WithClock(fixedClock(openTime)))
		require.NoError(t, err)

		res, err := g.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateOpen, res.State)
		assert.False(t, res.MarkerWritten)
		assert.False(t, res.SessionCleared)

		session, err := store.DutySession(ctx)
		require.NoError(t, err)
		assert.NotNil(t, session)
	})

	t.Run("first locked check of the day writes the marker", func(t *testing.T) {
		store := newCountingStore()
		g, err := New(store, WithClock(fixedClock(lockedTime)))
		require.NoError(t, err)

		res, err := g.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateLocked, res.State)
		assert.True(t, res.MarkerWritten)
		assert.False(t, res.SessionCleared)

		date, err := store.ResetDate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-14", date)
	})

	t.Run("surviving session is cleared with the reset", func(t *testing.T) {
		store := newCountingStore()
		require.NoError(t, store.PutDutySession(ctx, statestore.DutySession{Officer: "R. Adeyemi", Station: "main"}))

		g, err := New(store, WithClock(fixedClock(lockedTime)))
		require.NoError(t, err)

		res, err := g.Check(ctx)
		require.NoError(t, err)
		assert.True(t, res.MarkerWritten)
		assert.True(t, res.SessionCleared)

		session, err := store.DutySession(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("repeated locked checks write the marker at most once", func(t *testing.T) {
		store := newCountingStore()
		require.NoError(t, store.PutDutySession(ctx, statestore.DutySession{Officer: "R. Adeyemi"}))

		g, err := New(store, WithClock(fixedClock(lockedTime)))
		require.NoError(t, err)

		var cleared int
		for range 5 {
			res, err := g.Check(ctx)
			require.NoError(t, err)
			if res.SessionCleared {
				cleared++
			}
		}

		assert.Equal(t, 1, store.setDateCalls)
		assert.Equal(t, 1, cleared)
	})

	t.Run("login during locked hours is cleared without rewriting the marker", func(t *testing.T) {
		store := newCountingStore()
		g, err := New(store, WithClock(fixedClock(lockedTime)))
		require.NoError(t, err)

		_, err = g.Check(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, store.setDateCalls)

		// An officer signs on after the reset already ran today.
		require.NoError(t, store.PutDutySession(ctx, statestore.DutySession{Officer: "R. Adeyemi"}))

		res, err := g.Check(ctx)
		require.NoError(t, err)
		assert.True(t, res.SessionCleared)
		assert.False(t, res.MarkerWritten)
		assert.Equal(t, 1, store.setDateCalls)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		g, err := New(failingStore{statestore.NewInMemoryStore()}, WithClock(fixedClock(lockedTime)))
		require.NoError(t, err)

		_, err = g.Check(ctx)
		assert.ErrorContains(t, err, "store unavailable")
	})
}
