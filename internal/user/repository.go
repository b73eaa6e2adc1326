package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository defines persistence operations for accounts.
type Repository interface {
	GetByID(id int) (Account, error)
	GetByEmail(email string) (Account, error)
	Create(acc Account) (Account, error)
	Update(id int, acc Account) (Account, error)
	AdjustPoints(id int, delta int) (Account, error)
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	accounts []Account
}

func NewInMemoryRepository(seed []Account) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, a := range seed {
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
		r.accounts = append(r.accounts, a)
	}
	return r
}

func (r *InMemoryRepository) GetByID(id int) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) Create(acc Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc.ID = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, acc)
	return acc, nil
}

func (r *InMemoryRepository) Update(id int, acc Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.ID == id {
			acc.ID = id
			r.accounts[i] = acc
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *InMemoryRepository) AdjustPoints(id int, delta int) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.ID == id {
			a.Points += delta
			if a.Points < 0 {
				a.Points = 0
			}
			r.accounts[i] = a
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}
