package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records revoked session token IDs until the tokens would
// have expired anyway.
type SessionStore interface {
	// Revoke marks tokenID as revoked until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// revokedKeyPrefix namespaces revocation entries in Redis.
const revokedKeyPrefix = "session:revoked:"

// RevokedKey returns the Redis key holding the revocation of tokenID.
func RevokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// RedisSessionStore keeps revocations in Redis with a TTL equal to the
// token's remaining lifetime, so entries disappear on their own.
type RedisSessionStore struct {
	rdb redis.Cmdable
	now func() time.Time
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(rdb redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, now: time.Now}
}

// Revoke implements SessionStore.
func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already expired; validation rejects it without our help.
		return nil
	}
	if err := s.rdb.Set(ctx, RevokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked implements SessionStore.
func (s *RedisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.rdb.Get(ctx, RevokedKey(tokenID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
}

// MemorySessionStore keeps revocations in process memory. It suits a single
// instance; restarts forget revocations.
type MemorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an in-process session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke implements SessionStore. Expired entries are pruned on each call.
func (s *MemorySessionStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	if expiresAt.After(now) {
		s.revoked[tokenID] = expiresAt
	}
	return nil
}

// IsRevoked implements SessionStore.
func (s *MemorySessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[tokenID]
	return ok && exp.After(s.now()), nil
}
