package product

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInsufficient = errors.New("insufficient stock")
)

// Repository defines persistence operations for the catalog.
type Repository interface {
	List() []Product
	Search(q string) []Product
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
	ListBySuitableType(suitableType string) []Product
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	// AdjustStock changes stock by delta and fails with ErrInsufficient
	// when the result would be negative.
	AdjustStock(id int, delta int) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	products []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, p := range seed {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.products = append(r.products, p)
	}
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *InMemoryRepository) Search(q string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q = strings.ToLower(q)
	out := make([]Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListBySuitableType(suitableType string) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.products {
		for _, st := range p.SuitableTypes {
			if strings.EqualFold(st, suitableType) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if existing.ID == id {
			p.ID = id
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) AdjustStock(id int, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			if p.Quantity+delta < 0 {
				return ErrInsufficient
			}
			p.Quantity += delta
			r.products[i] = p
			return nil
		}
	}
	return ErrNotFound
}
