package quiz

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("not found")

// Repository provides access to quiz questions and options. List methods
// skip soft-deleted rows; lookups by id resolve deleted rows too, so
// previously submitted answers keep working.
type Repository interface {
	ListQuestions() []Question
	CreateQuestion(q Question) (Question, error)
	UpdateQuestion(id int, q Question) (Question, error)
	DeleteQuestion(id int) error
	CreateOption(questionID int, opt Option) (Option, error)
	UpdateOption(id int, opt Option) (Option, error)
	DeleteOption(id int) error
	ListOptionsByIDs(ids []int) ([]Option, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu           sync.RWMutex
	questions    map[int]Question
	options      map[int]Option
	nextQuestion int
	nextOption   int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		questions:    make(map[int]Question),
		options:      make(map[int]Option),
		nextQuestion: 1,
		nextOption:   1,
	}
}

func (r *InMemoryRepository) ListQuestions() []Question {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Question, 0, len(r.questions))
	for id := 1; id < r.nextQuestion; id++ {
		q, ok := r.questions[id]
		if !ok || q.IsDeleted {
			continue
		}
		q.Options = r.optionsFor(q.ID)
		out = append(out, q)
	}
	return out
}

func (r *InMemoryRepository) optionsFor(questionID int) []Option {
	opts := make([]Option, 0)
	for id := 1; id < r.nextOption; id++ {
		opt, ok := r.options[id]
		if !ok || opt.IsDeleted || opt.QuestionID != questionID {
			continue
		}
		opts = append(opts, opt)
	}
	return opts
}

func (r *InMemoryRepository) CreateQuestion(q Question) (Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = r.nextQuestion
	r.nextQuestion++
	q.Options = []Option{}
	r.questions[q.ID] = q
	return q, nil
}

func (r *InMemoryRepository) UpdateQuestion(id int, q Question) (Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.questions[id]
	if !ok || existing.IsDeleted {
		return Question{}, ErrNotFound
	}
	existing.Name = q.Name
	r.questions[id] = existing
	existing.Options = r.optionsFor(id)
	return existing, nil
}

func (r *InMemoryRepository) DeleteQuestion(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.questions[id]
	if !ok || existing.IsDeleted {
		return ErrNotFound
	}
	existing.IsDeleted = true
	r.questions[id] = existing
	return nil
}

func (r *InMemoryRepository) CreateOption(questionID int, opt Option) (Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[questionID]
	if !ok || q.IsDeleted {
		return Option{}, ErrNotFound
	}
	opt.ID = r.nextOption
	r.nextOption++
	opt.QuestionID = questionID
	r.options[opt.ID] = opt
	return opt, nil
}

func (r *InMemoryRepository) UpdateOption(id int, opt Option) (Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.options[id]
	if !ok || existing.IsDeleted {
		return Option{}, ErrNotFound
	}
	existing.Label = opt.Label
	existing.SuitableType = opt.SuitableType
	r.options[id] = existing
	return existing, nil
}

func (r *InMemoryRepository) DeleteOption(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.options[id]
	if !ok || existing.IsDeleted {
		return ErrNotFound
	}
	existing.IsDeleted = true
	r.options[id] = existing
	return nil
}

func (r *InMemoryRepository) ListOptionsByIDs(ids []int) ([]Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Option, 0, len(ids))
	for _, id := range ids {
		if opt, ok := r.options[id]; ok {
			out = append(out, opt)
		}
	}
	return out, nil
}
