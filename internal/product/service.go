package product

// ServiceInterface is the surface other packages (cart, order, quiz,
// wishlist) depend on.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
	ListBySuitableType(suitableType string) []Product
	AdjustStock(id int, delta int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) Search(q string) []Product {
	if q == "" {
		return s.repo.List()
	}
	return s.repo.Search(q)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) ListBySuitableType(suitableType string) []Product {
	return s.repo.ListBySuitableType(suitableType)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) AdjustStock(id int, delta int) error {
	return s.repo.AdjustStock(id, delta)
}
