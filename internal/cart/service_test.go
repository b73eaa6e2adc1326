package cart

import (
	"testing"

	"github.com/tvu-dev/diamond-shop-backend/internal/product"
)

func newTestService() *Service {
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Hydrating Serum", Price: 450000, Quantity: 10},
		{ID: 2, Name: "Gentle Cleanser", Price: 120000, Quantity: 5},
	}))
	return NewService(NewInMemoryRepository(), products)
}

func TestAddIsIdempotent(t *testing.T) {
	s := newTestService()

	lines, err := s.Add(7, 1)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", lines)
	}

	// bump the quantity, then add the same product again
	if _, err := s.SetQuantity(7, 1, 3); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	lines, err = s.Add(7, 1)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected no duplicate line, got %d lines", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("re-add must keep the existing quantity, got %d", lines[0].Quantity)
	}
}

func TestAddSnapshotsProductFields(t *testing.T) {
	s := newTestService()
	lines, err := s.Add(7, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	l := lines[0]
	if l.Name != "Gentle Cleanser" || l.UnitPrice != 120000 {
		t.Fatalf("line did not snapshot product fields: %+v", l)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	s := newTestService()
	if _, err := s.Add(7, 999); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestSetQuantityClampsToOne(t *testing.T) {
	s := newTestService()
	if _, err := s.Add(7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, q := range []int{0, -5} {
		lines, err := s.SetQuantity(7, 1, q)
		if err != nil {
			t.Fatalf("set quantity %d failed: %v", q, err)
		}
		if lines[0].Quantity != 1 {
			t.Fatalf("quantity %d must clamp to 1, got %d", q, lines[0].Quantity)
		}
	}
}

func TestSetQuantityMissingLine(t *testing.T) {
	s := newTestService()
	if _, err := s.SetQuantity(7, 1, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := newTestService()
	s.Add(7, 1)
	s.Add(7, 2)

	lines, err := s.Remove(7, 1)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != 2 {
		t.Fatalf("expected only product 2 to remain, got %+v", lines)
	}

	if err := s.Clear(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	lines, _ = s.Lines(7)
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", lines)
	}
}

func TestTotals(t *testing.T) {
	s := newTestService()
	s.Add(7, 1)
	s.Add(7, 2)
	s.SetQuantity(7, 1, 2)

	total, err := s.Total(7)
	if err != nil {
		t.Fatalf("total failed: %v", err)
	}
	if want := 2*450000.0 + 120000.0; total != want {
		t.Fatalf("expected total %v, got %v", want, total)
	}

	lines, _ := s.Lines(7)
	if Count(lines) != 3 {
		t.Fatalf("expected count 3, got %d", Count(lines))
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := newTestService()
	s.Add(7, 1)
	s.Add(8, 2)

	lines7, _ := s.Lines(7)
	lines8, _ := s.Lines(8)
	if len(lines7) != 1 || lines7[0].ProductID != 1 {
		t.Fatalf("user 7 cart wrong: %+v", lines7)
	}
	if len(lines8) != 1 || lines8[0].ProductID != 2 {
		t.Fatalf("user 8 cart wrong: %+v", lines8)
	}
}
