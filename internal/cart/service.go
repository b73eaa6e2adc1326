package cart

import (
	"github.com/tvu-dev/diamond-shop-backend/internal/product"
)

// ServiceInterface is the surface checkout and payment depend on.
type ServiceInterface interface {
	Lines(userID int) ([]Line, error)
	Clear(userID int) error
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Lines(userID int) ([]Line, error) {
	return s.repo.Get(userID)
}

// Add puts a product into the cart with quantity 1. Adding a product that is
// already present is a no-op; the existing quantity is kept.
func (s *Service) Add(userID int, productID int) ([]Line, error) {
	lines, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.ProductID == productID {
			return lines, nil
		}
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	lines = append(lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Image:     p.Image,
	})
	if err := s.repo.Replace(userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetQuantity updates a line's quantity, clamping to a minimum of 1.
// Removal is always an explicit Remove, never a quantity of zero.
func (s *Service) SetQuantity(userID int, productID int, quantity int) ([]Line, error) {
	if quantity < 1 {
		quantity = 1
	}
	lines, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		if l.ProductID == productID {
			lines[i].Quantity = quantity
			if err := s.repo.Replace(userID, lines); err != nil {
				return nil, err
			}
			return lines, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) Remove(userID int, productID int) ([]Line, error) {
	lines, err := s.repo.Get(userID)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		if l.ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			if err := s.repo.Replace(userID, lines); err != nil {
				return nil, err
			}
			return lines, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) Clear(userID int) error {
	return s.repo.Replace(userID, []Line{})
}

func (s *Service) Total(userID int) (float64, error) {
	lines, err := s.repo.Get(userID)
	if err != nil {
		return 0, err
	}
	return Total(lines), nil
}
