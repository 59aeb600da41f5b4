package auth

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records live sessions server-side so logout actually revokes
// access before token expiry.
type SessionStore interface {
	Put(ctx context.Context, sid string, uid uint, ttl time.Duration) error
	// Get returns the user id for sid, or ok=false when the session is
	// absent or expired.
	Get(ctx context.Context, sid string) (uid uint, ok bool, err error)
	Delete(ctx context.Context, sid string) error
}

func sessionKey(sid string) string { return "session:" + sid }

// RedisSessionStore is the production store.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Put(ctx context.Context, sid string, uid uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(sid), strconv.FormatUint(uint64(uid), 10), ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sid string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	uid, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(uid), true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, sessionKey(sid)).Err()
}

// MemorySessionStore backs tests and redis-less local runs.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memSession
}

type memSession struct {
	uid     uint
	expires time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memSession)}
}

func (s *MemorySessionStore) Put(_ context.Context, sid string, uid uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memSession{uid: uid, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sid string) (uint, bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.expires) {
		return 0, false, nil
	}
	return sess.uid, true, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
