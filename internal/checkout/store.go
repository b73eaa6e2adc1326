package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no checkout session")

// sessionTTL keeps abandoned checkouts from living forever.
const sessionTTL = 30 * time.Minute

// Store persists checkout sessions between stage submissions.
type Store interface {
	Get(ctx context.Context, userID int) (Session, error)
	Put(ctx context.Context, userID int, sess Session) error
	Delete(ctx context.Context, userID int) error
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("checkout:session:%d", userID)
}

func (s *RedisStore) Get(ctx context.Context, userID int) (Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Put(ctx context.Context, userID int, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(userID), raw, sessionTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

// MemoryStore backs tests and redis-less local runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int]Session)}
}

func (s *MemoryStore) Get(_ context.Context, userID int) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *MemoryStore) Put(_ context.Context, userID int, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
