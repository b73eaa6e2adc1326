package user

import "golang.org/x/crypto/bcrypt"

// ServiceInterface is what other packages depend on when they need account
// data (orders crediting points, handlers resolving the current user).
type ServiceInterface interface {
	GetByID(id int) (Account, error)
	AdjustPoints(id int, delta int) (Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Account, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(acc Account) (Account, error) {
	if _, err := s.repo.GetByEmail(acc.Email); err == nil {
		return Account{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Account{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	acc.Password = string(hashed)
	if acc.Role == "" {
		acc.Role = RoleCustomer
	}
	return s.repo.Create(acc)
}

func (s *Service) Authenticate(email, password string) (Account, error) {
	acc, err := s.repo.GetByEmail(email)
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

func (s *Service) Update(id int, acc Account) (Account, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Account{}, err
	}
	if acc.Email == "" {
		acc.Email = existing.Email
	}
	if acc.Username == "" {
		acc.Username = existing.Username
	}
	if acc.FullName == "" {
		acc.FullName = existing.FullName
	}
	if acc.Phone == "" {
		acc.Phone = existing.Phone
	}
	acc.Role = existing.Role
	acc.Points = existing.Points
	return s.repo.Update(id, acc)
}

// AdjustPoints moves the loyalty balance by delta (negative to spend).
// The balance never drops below zero.
func (s *Service) AdjustPoints(id int, delta int) (Account, error) {
	return s.repo.AdjustPoints(id, delta)
}
