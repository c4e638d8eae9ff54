package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// SessionStore tracks the JTI of every live token in Redis. A token
// whose JTI is absent has been logged out or expired and is rejected by
// the middleware.
type SessionStore struct {
	Client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{Client: client}
}

func (s *SessionStore) key(jti string) string {
	return sessionKeyPrefix + jti
}

// Save records a freshly issued token for the lifetime of the token.
func (s *SessionStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	if s.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return s.Client.Set(ctx, s.key(jti), "1", ttl).Err()
}

// Exists reports whether the session behind jti is still live.
func (s *SessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	if s.Client == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	_, err := s.Client.Get(ctx, s.key(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session from redis: %w", err)
	}
	return true, nil
}

// Revoke drops the session, invalidating the token before its expiry.
func (s *SessionStore) Revoke(ctx context.Context, jti string) error {
	if s.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return s.Client.Del(ctx, s.key(jti)).Err()
}
