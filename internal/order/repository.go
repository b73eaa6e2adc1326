package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(o Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByAccount(accountID int) ([]Order, error)
	ListAll() ([]Order, error)
	Update(id int, o Order) (Order, error)
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, o := range seed {
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
		r.orders = append(r.orders, o)
	}
	return r
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByAccount(accountID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.AccountID == accountID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) Update(id int, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.orders {
		if existing.ID == id {
			o.ID = id
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
