package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoRedirectURL = errors.New("no redirect url cached for order")

// redirectTTL bounds how long an unused gateway URL stays valid. VNPay
// links expire on the gateway side anyway, so there is no point keeping
// them longer.
const redirectTTL = 15 * time.Minute

// URLStore caches the single-use gateway redirect URL between order
// creation and the order-summary page that consumes it.
type URLStore interface {
	Save(ctx context.Context, orderID int, paymentURL string) error
	// Take returns the cached URL and removes it: the link is single-use.
	Take(ctx context.Context, orderID int) (string, error)
}

type RedisURLStore struct {
	rdb *redis.Client
}

func NewRedisURLStore(rdb *redis.Client) *RedisURLStore {
	return &RedisURLStore{rdb: rdb}
}

func redirectKey(orderID int) string {
	return fmt.Sprintf("payment:redirect:%d", orderID)
}

func (s *RedisURLStore) Save(ctx context.Context, orderID int, paymentURL string) error {
	return s.rdb.Set(ctx, redirectKey(orderID), paymentURL, redirectTTL).Err()
}

func (s *RedisURLStore) Take(ctx context.Context, orderID int) (string, error) {
	val, err := s.rdb.GetDel(ctx, redirectKey(orderID)).Result()
	if err == redis.Nil {
		return "", ErrNoRedirectURL
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// MemoryURLStore backs tests and redis-less local runs.
type MemoryURLStore struct {
	mu   sync.Mutex
	urls map[int]string
}

func NewMemoryURLStore() *MemoryURLStore {
	return &MemoryURLStore{urls: make(map[int]string)}
}

func (s *MemoryURLStore) Save(_ context.Context, orderID int, paymentURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls[orderID] = paymentURL
	return nil
}

func (s *MemoryURLStore) Take(_ context.Context, orderID int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.urls[orderID]
	if !ok {
		return "", ErrNoRedirectURL
	}
	delete(s.urls, orderID)
	return val, nil
}
