package utils

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionEntry struct {
	userID    uint
	expiresAt time.Time
}

// SessionStore maps opaque cookie tokens to user identities. State lives in
// Redis when a client is provided; otherwise in an in-process map, which is
// enough for a single instance and for tests.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration

	mu  sync.Mutex
	mem map[string]sessionEntry
}

// NewSessionStore creates a store with the given TTL. rdb may be nil.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &SessionStore{
		rdb: rdb,
		ttl: ttl,
		mem: map[string]sessionEntry{},
	}
}

// TTL returns the configured session lifetime, used for the cookie max-age.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create establishes a session for the user and returns the opaque token.
func (s *SessionStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err(); err != nil {
			return "", err
		}
		return token, nil
	}
	s.mu.Lock()
	s.evictExpiredLocked()
	s.mem[token] = sessionEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// UserID resolves a token to the user it identifies. The second return value
// is false for unknown, expired, or empty tokens.
func (s *SessionStore) UserID(ctx context.Context, token string) (uint, bool) {
	if token == "" {
		return 0, false
	}
	if s.rdb != nil {
		id, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Uint64()
		if err != nil {
			return 0, false
		}
		return uint(id), true
	}
	s.mu.Lock()
	entry, ok := s.mem[token]
	if ok && time.Now().After(entry.expiresAt) {
		delete(s.mem, token)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return 0, false
	}
	return entry.userID, true
}

// Destroy removes a session. Destroying an unknown token is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
		return
	}
	s.mu.Lock()
	delete(s.mem, token)
	s.mu.Unlock()
}

func (s *SessionStore) evictExpiredLocked() {
	now := time.Now()
	for token, entry := range s.mem {
		if now.After(entry.expiresAt) {
			delete(s.mem, token)
		}
	}
}
