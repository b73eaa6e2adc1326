package category

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List() []Category
	GetByID(id int) (Category, error)
	Create(cat Category) (Category, error)
	Update(id int, cat Category) (Category, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu         sync.RWMutex
	nextID     int
	categories []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, c := range seed {
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
		r.categories = append(r.categories, c)
	}
	return r
}

func (r *InMemoryRepository) List() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(cat Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat.ID = r.nextID
	r.nextID++
	r.categories = append(r.categories, cat)
	return cat, nil
}

func (r *InMemoryRepository) Update(id int, cat Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.ID == id {
			cat.ID = id
			r.categories[i] = cat
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
