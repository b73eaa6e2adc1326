package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tvu-dev/diamond-shop-backend/internal/product"
	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

var (
	ErrEmptyDraft    = errors.New("order has no items")
	ErrInvalidMethod = errors.New("invalid payment method")
)

// DraftItem references a product by id; name and price are snapshotted from
// the catalog at creation time, never trusted from the caller.
type DraftItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Draft is the client-assembled order about to be submitted.
type Draft struct {
	Items           []DraftItem `json:"details"`
	PaymentMethod   Method      `json:"paymentMethod"`
	ShippingAddress string      `json:"shippingAddress"`
	ShippingPhone   string      `json:"shippingPhone"`
	ReceiverName    string      `json:"receiverName"`
	AppliedPoints   int         `json:"point"`
}

// ServiceInterface is the surface payment reconciliation and checkout
// depend on.
type ServiceInterface interface {
	Create(accountID int, draft Draft) (Order, error)
	GetByID(id int) (Order, error)
	UpdateStatus(id int, target Status, adminInitiated bool) (Order, error)
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
	users    user.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface, users user.ServiceInterface) *Service {
	return &Service{repo: repo, products: products, users: users}
}

// Create validates stock for every line, decrements it, snapshots prices and
// persists the order. Async methods start in PENDING_PAYMENT so the payment
// result can move them; card payments settle synchronously and start
// IN_PROCESS.
func (s *Service) Create(accountID int, draft Draft) (Order, error) {
	if len(draft.Items) == 0 {
		return Order{}, ErrEmptyDraft
	}
	if !draft.PaymentMethod.Valid() {
		return Order{}, ErrInvalidMethod
	}

	acc, err := s.users.GetByID(accountID)
	if err != nil {
		return Order{}, err
	}

	applied := draft.AppliedPoints
	if applied < 0 {
		applied = 0
	}
	if applied > acc.Points {
		applied = acc.Points
	}

	var total float64
	details := make([]Detail, 0, len(draft.Items))
	for _, item := range draft.Items {
		if item.Quantity <= 0 {
			return Order{}, fmt.Errorf("invalid quantity for product %d", item.ProductID)
		}
		p, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return Order{}, err
		}
		if err := s.products.AdjustStock(p.ID, -item.Quantity); err != nil {
			if err == product.ErrInsufficient {
				return Order{}, fmt.Errorf("quantity of %s is not enough", p.Name)
			}
			return Order{}, err
		}
		lineTotal := p.Price * float64(item.Quantity)
		details = append(details, Detail{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       lineTotal,
			Quantity:    item.Quantity,
		})
		total += lineTotal
	}

	if float64(applied) > total {
		applied = int(total)
	}
	total -= float64(applied)

	status := StatusInProcess
	if draft.PaymentMethod.Async() {
		status = StatusPendingPayment
	}

	o := Order{
		AccountID:       accountID,
		Username:        acc.Username,
		Status:          status,
		Total:           total,
		PaymentMethod:   draft.PaymentMethod,
		ShippingAddress: draft.ShippingAddress,
		ShippingPhone:   draft.ShippingPhone,
		ReceiverName:    draft.ReceiverName,
		AppliedPoints:   applied,
		Details:         details,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	created, err := s.repo.Create(o)
	if err != nil {
		return Order{}, err
	}
	if applied > 0 {
		if _, err := s.users.AdjustPoints(accountID, -applied); err != nil {
			fmt.Printf("warning: could not spend points for account %d: %v\n", accountID, err)
		}
	}
	return created, nil
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByAccount(accountID int) ([]Order, error) {
	return s.repo.ListByAccount(accountID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

// UpdateStatus enforces the lifecycle rules. Admins may only mark paid the
// pending bank transfers they verified by hand; gateway-driven verification
// (adminInitiated=false) may settle any pending order. Cancelling is allowed
// while the order is still in flight. Terminal states never change.
func (s *Service) UpdateStatus(id int, target Status, adminInitiated bool) (Order, error) {
	if !target.Valid() {
		return Order{}, ErrInvalidTransition
	}
	o, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}

	switch target {
	case StatusPaid:
		if adminInitiated {
			if !o.CanMarkPaid() {
				return Order{}, ErrInvalidTransition
			}
		} else if o.Status != StatusPendingPayment && o.Status != StatusInProcess {
			return Order{}, ErrInvalidTransition
		}
	case StatusCancel:
		if !o.CanCancel() {
			return Order{}, ErrInvalidTransition
		}
	case StatusInProcess, StatusPendingPayment:
		return Order{}, ErrInvalidTransition
	}

	if target == StatusPaid && o.Status != StatusPaid {
		// loyalty credit happens exactly once, on the transition into PAID
		earned := int(math.Floor(o.Total / user.PointRate))
		o.EarnedPoints = earned
		if _, err := s.users.AdjustPoints(o.AccountID, earned); err != nil {
			fmt.Printf("warning: could not credit points for account %d: %v\n", o.AccountID, err)
		}
	}

	o.Status = target
	return s.repo.Update(id, o)
}
