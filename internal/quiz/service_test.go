package quiz

import (
	"testing"

	"github.com/tvu-dev/diamond-shop-backend/internal/product"
)

func newQuizFixture(t *testing.T) (*Service, map[string]Option) {
	t.Helper()
	repo := NewInMemoryRepository()
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Hydrating Serum", SuitableTypes: []string{"dry", "sensitive"}},
		{ID: 2, Name: "Mattifying Gel", SuitableTypes: []string{"oily"}},
		{ID: 3, Name: "Barrier Cream", SuitableTypes: []string{"dry"}},
	}))
	s := NewService(repo, products)

	q1, err := s.CreateQuestion("How does your skin feel by midday?")
	if err != nil {
		t.Fatalf("create question failed: %v", err)
	}
	q2, _ := s.CreateQuestion("How often do you get shiny areas?")

	opts := map[string]Option{}
	add := func(key string, questionID int, label, suitableType string) {
		opt, err := s.CreateOption(questionID, label, suitableType)
		if err != nil {
			t.Fatalf("create option failed: %v", err)
		}
		opts[key] = opt
	}
	add("tight", q1.ID, "Tight and flaky", "dry")
	add("shiny", q1.ID, "Shiny all over", "oily")
	add("fine", q2.ID, "Rarely", "dry")
	add("often", q2.ID, "Every day", "oily")

	return s, opts
}

func TestQuestionsIncludeOptions(t *testing.T) {
	s, _ := newQuizFixture(t)

	qs := s.Questions()
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if len(qs[0].Options) != 2 || len(qs[1].Options) != 2 {
		t.Fatalf("expected 2 options each, got %d and %d", len(qs[0].Options), len(qs[1].Options))
	}
}

func TestEvaluateDominantType(t *testing.T) {
	s, opts := newQuizFixture(t)

	rec, err := s.Evaluate([]int{opts["tight"].ID, opts["fine"].ID, opts["often"].ID})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if rec.SuitableType != "dry" {
		t.Fatalf("expected dry to dominate 2:1, got %q", rec.SuitableType)
	}
	if len(rec.Products) != 2 {
		t.Fatalf("expected 2 dry products, got %d", len(rec.Products))
	}
}

func TestEvaluateTieGoesToFirstAnswered(t *testing.T) {
	s, opts := newQuizFixture(t)

	rec, err := s.Evaluate([]int{opts["shiny"].ID, opts["fine"].ID})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if rec.SuitableType != "oily" {
		t.Fatalf("tie must go to the first type answered, got %q", rec.SuitableType)
	}
}

func TestEvaluateIgnoresUnknownOptions(t *testing.T) {
	s, opts := newQuizFixture(t)

	rec, err := s.Evaluate([]int{opts["tight"].ID, 9999})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if rec.SuitableType != "dry" {
		t.Fatalf("unknown options are skipped, got %q", rec.SuitableType)
	}
}

func TestEvaluateNoAnswers(t *testing.T) {
	s, _ := newQuizFixture(t)

	if _, err := s.Evaluate(nil); err != ErrNoAnswers {
		t.Fatalf("expected ErrNoAnswers for empty input, got %v", err)
	}
	if _, err := s.Evaluate([]int{9999}); err != ErrNoAnswers {
		t.Fatalf("expected ErrNoAnswers when nothing resolves, got %v", err)
	}
}

func TestSoftDeleteHidesButKeepsResolvable(t *testing.T) {
	s, opts := newQuizFixture(t)

	if err := s.DeleteOption(opts["tight"].ID); err != nil {
		t.Fatalf("delete option failed: %v", err)
	}

	// the option disappears from the questionnaire
	for _, q := range s.Questions() {
		for _, o := range q.Options {
			if o.ID == opts["tight"].ID {
				t.Fatal("deleted option must not be listed")
			}
		}
	}

	// but an already-submitted answer still counts
	rec, err := s.Evaluate([]int{opts["tight"].ID})
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if rec.SuitableType != "dry" {
		t.Fatalf("deleted option must stay resolvable, got %q", rec.SuitableType)
	}

	// deleting twice is a not-found
	if err := s.DeleteOption(opts["tight"].ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDeleteQuestionHidesIt(t *testing.T) {
	s, _ := newQuizFixture(t)
	qs := s.Questions()

	if err := s.DeleteQuestion(qs[0].ID); err != nil {
		t.Fatalf("delete question failed: %v", err)
	}
	if remaining := s.Questions(); len(remaining) != 1 {
		t.Fatalf("expected 1 question left, got %d", len(remaining))
	}
	if _, err := s.UpdateQuestion(qs[0].ID, "renamed"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for deleted question, got %v", err)
	}
}
