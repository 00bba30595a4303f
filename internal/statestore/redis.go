package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Key names are shared with the kiosk frontend and must not change.
const (
	resetDateKey   = "lastMidnightReset"
	dutySessionKey = "securitySession"
)

// RedisStore implements Store on Redis, sharing the markers with the kiosk
// frontend that writes the duty session at login.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) ResetDate(ctx context.Context) (string, error) {
	date, err := s.client.Get(ctx, resetDateKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get reset date: %w", err)
	}
	return date, nil
}

func (s *RedisStore) SetResetDate(ctx context.Context, date string) error {
	if err := s.client.Set(ctx, resetDateKey, date, 0).Err(); err != nil {
		return fmt.Errorf("set reset date: %w", err)
	}
	return nil
}

func (s *RedisStore) DutySession(ctx context.Context) (*DutySession, error) {
	raw, err := s.client.Get(ctx, dutySessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get duty session: %w", err)
	}

	var session DutySession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode duty session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) PutDutySession(ctx context.Context, session DutySession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode duty session: %w", err)
	}
	if err := s.client.Set(ctx, dutySessionKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("put duty session: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearDutySession(ctx context.Context) (bool, error) {
	removed, err := s.client.Del(ctx, dutySessionKey).Result()
	if err != nil {
		return false, fmt.Errorf("clear duty session: %w", err)
	}
	return removed > 0, nil
}
