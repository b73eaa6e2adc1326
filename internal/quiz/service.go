package quiz

import (
	"errors"

	"github.com/tvu-dev/diamond-shop-backend/internal/product"
)

var ErrNoAnswers = errors.New("no answers submitted")

// Recommendation is the quiz outcome: the dominant skin type across the
// chosen options plus the catalog products suited to it.
type Recommendation struct {
	SuitableType string            `json:"suitableType"`
	Products     []product.Product `json:"products"`
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Questions() []Question {
	return s.repo.ListQuestions()
}

func (s *Service) CreateQuestion(name string) (Question, error) {
	return s.repo.CreateQuestion(Question{Name: name})
}

func (s *Service) UpdateQuestion(id int, name string) (Question, error) {
	return s.repo.UpdateQuestion(id, Question{Name: name})
}

func (s *Service) DeleteQuestion(id int) error {
	return s.repo.DeleteQuestion(id)
}

func (s *Service) CreateOption(questionID int, label, suitableType string) (Option, error) {
	return s.repo.CreateOption(questionID, Option{Label: label, SuitableType: suitableType})
}

func (s *Service) UpdateOption(id int, label, suitableType string) (Option, error) {
	return s.repo.UpdateOption(id, Option{Label: label, SuitableType: suitableType})
}

func (s *Service) DeleteOption(id int) error {
	return s.repo.DeleteOption(id)
}

// Evaluate tallies one suitable-type vote per answered option and
// recommends products for the most frequent one. Ties go to the type seen
// first in answer order. Unknown option ids are ignored.
func (s *Service) Evaluate(optionIDs []int) (Recommendation, error) {
	if len(optionIDs) == 0 {
		return Recommendation{}, ErrNoAnswers
	}
	opts, err := s.repo.ListOptionsByIDs(optionIDs)
	if err != nil {
		return Recommendation{}, err
	}
	if len(opts) == 0 {
		return Recommendation{}, ErrNoAnswers
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, opt := range opts {
		if opt.SuitableType == "" {
			continue
		}
		if _, seen := counts[opt.SuitableType]; !seen {
			order = append(order, opt.SuitableType)
		}
		counts[opt.SuitableType]++
	}
	if len(order) == 0 {
		return Recommendation{}, ErrNoAnswers
	}

	dominant := order[0]
	for _, t := range order[1:] {
		if counts[t] > counts[dominant] {
			dominant = t
		}
	}

	return Recommendation{
		SuitableType: dominant,
		Products:     s.products.ListBySuitableType(dominant),
	}, nil
}
