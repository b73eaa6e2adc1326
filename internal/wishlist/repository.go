package wishlist

import "sync"

// Repository stores each account's wishlisted product ids in insertion
// order. Add is idempotent; Remove of an absent id is a no-op. Both return
// the resulting list.
type Repository interface {
	Add(userID int, productID int) ([]int, error)
	Remove(userID int, productID int) ([]int, error)
	List(userID int) ([]int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	lists map[int][]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{lists: make(map[int][]int)}
}

func (r *InMemoryRepository) Add(userID int, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.lists[userID]
	for _, id := range ids {
		if id == productID {
			return copyIDs(ids), nil
		}
	}
	ids = append(ids, productID)
	r.lists[userID] = ids
	return copyIDs(ids), nil
}

func (r *InMemoryRepository) Remove(userID int, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.lists[userID]
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			out = append(out, id)
		}
	}
	r.lists[userID] = out
	return copyIDs(out), nil
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyIDs(r.lists[userID]), nil
}

func copyIDs(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}
