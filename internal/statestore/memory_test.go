package statestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestResetDate() {
	s.Run("empty until set", func() {
		date, err := s.store.ResetDate(s.ctx)
		s.Require().NoError(err)
		s.Empty(date)
	})

	s.Run("round-trips", func() {
		s.Require().NoError(s.store.SetResetDate(s.ctx, "2025-03-14"))

		date, err := s.store.ResetDate(s.ctx)
		s.Require().NoError(err)
		s.Equal("2025-03-14", date)
	})
}

func (s *InMemoryStoreSuite) TestDutySession() {
	s.Run("absent until put", func() {
		session, err := s.store.DutySession(s.ctx)
		s.Require().NoError(err)
		s.Nil(session)
	})

	s.Run("round-trips", func() {
		started := time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC)
		s.Require().NoError(s.store.PutDutySession(s.ctx, DutySession{
			Officer:   "R. Adeyemi",
			Station:   "main",
			StartedAt: started,
		}))

		session, err := s.store.DutySession(s.ctx)
		s.Require().NoError(err)
		s.Require().NotNil(session)
		s.Equal("R. Adeyemi", session.Officer)
		s.Equal("main", session.Station)
		s.True(session.StartedAt.Equal(started))
	})

	s.Run("returned session is a copy", func() {
		s.Require().NoError(s.store.PutDutySession(s.ctx, DutySession{Officer: "R. Adeyemi"}))

		session, err := s.store.DutySession(s.ctx)
		s.Require().NoError(err)
		session.Officer = "mutated"

		again, err := s.store.DutySession(s.ctx)
		s.Require().NoError(err)
		s.Equal("R. Adeyemi", again.Officer)
	})

	s.Run("clear reports presence", func() {
		s.Require().NoError(s.store.PutDutySession(s.ctx, DutySession{Officer: "R. Adeyemi"}))

		present, err := s.store.ClearDutySession(s.ctx)
		s.Require().NoError(err)
		s.True(present)

		present, err = s.store.ClearDutySession(s.ctx)
		s.Require().NoError(err)
		s.False(present)
	})
}
