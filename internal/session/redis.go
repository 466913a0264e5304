package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps tokens under session:<tabID>, expiring with the tab.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisStore) Read(ctx context.Context, tabID string) (Session, error) {
	if tabID == "" {
		return NoSession, ErrEmptyTab
	}
	token, err := s.client.Get(ctx, redisKeyPrefix+tabID).Result()
	if errors.Is(err, redis.Nil) {
		return NoSession, nil
	}
	if err != nil {
		return NoSession, fmt.Errorf("read session: %w", err)
	}
	return New(token), nil
}

func (s *redisStore) Write(ctx context.Context, tabID, token string) error {
	if err := checkWrite(tabID, token); err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+tabID, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, tabID string) error {
	if tabID == "" {
		return ErrEmptyTab
	}
	if err := s.client.Del(ctx, redisKeyPrefix+tabID).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
