package cart

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("cart not found")

// Repository persists the whole line list per user. Every mutation goes
// through Replace: the stored list is overwritten as one unit, never
// patched line by line.
type Repository interface {
	Get(userID int) ([]Line, error)
	Replace(userID int, lines []Line) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]Line
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int][]Line)}
}

func (r *InMemoryRepository) Get(userID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.carts[userID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *InMemoryRepository) Replace(userID int, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]Line, len(lines))
	copy(stored, lines)
	r.carts[userID] = stored
	return nil
}
