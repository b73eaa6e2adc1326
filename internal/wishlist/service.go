package wishlist

import "github.com/tvu-dev/diamond-shop-backend/internal/product"

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Add wishlists a product. Adding a product that is already on the list
// succeeds and leaves the list unchanged.
func (s *Service) Add(userID int, productID int) ([]int, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.Add(userID, productID)
}

func (s *Service) Remove(userID int, productID int) ([]int, error) {
	return s.repo.Remove(userID, productID)
}

// List returns the wishlisted products in the order they were added.
// Products deleted from the catalog since then are silently dropped.
func (s *Service) List(userID int) ([]product.Product, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []product.Product{}, nil
	}
	return s.products.ListByIDs(ids)
}
