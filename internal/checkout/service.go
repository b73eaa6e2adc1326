package checkout

import (
	"context"
	"errors"

	"github.com/tvu-dev/diamond-shop-backend/internal/cart"
	"github.com/tvu-dev/diamond-shop-backend/internal/order"
	"github.com/tvu-dev/diamond-shop-backend/internal/payment"
)

var (
	ErrStageOrder        = errors.New("checkout stages must be completed in order")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMissingPaymentURL = errors.New("payment gateway did not return a redirect url")
)

// OutcomeKind tells the storefront what to do after a successful submit.
type OutcomeKind string

const (
	// OutcomeRedirect: hard-redirect the browser to PaymentURL (MoMo).
	OutcomeRedirect OutcomeKind = "redirect"
	// OutcomeOrderSummary: show the order summary; the redirect URL is
	// cached server-side for a single later use (VNPay).
	OutcomeOrderSummary OutcomeKind = "order_summary"
	// OutcomePaymentResult: go straight to the result page with the
	// bank-transfer marker; payment is confirmed out of band.
	OutcomePaymentResult OutcomeKind = "payment_result"
	// OutcomeOrderHistory: payment settled synchronously, the cart is
	// already cleared; show order history with a success banner.
	OutcomeOrderHistory OutcomeKind = "order_history"
)

type Outcome struct {
	Kind       OutcomeKind  `json:"kind"`
	OrderID    int          `json:"orderId"`
	PaymentURL string       `json:"paymentUrl,omitempty"`
	Method     order.Method `json:"method"`
}

// OrderCreator is the slice of the order service checkout needs.
type OrderCreator interface {
	Create(accountID int, draft order.Draft) (order.Order, error)
}

type Service struct {
	store  Store
	carts  cart.ServiceInterface
	orders OrderCreator
	linker order.PaymentLinker
	urls   payment.URLStore
}

func NewService(store Store, carts cart.ServiceInterface, orders OrderCreator, linker order.PaymentLinker, urls payment.URLStore) *Service {
	return &Service{store: store, carts: carts, orders: orders, linker: linker, urls: urls}
}

func (s *Service) Session(ctx context.Context, userID int) (Session, error) {
	sess, err := s.store.Get(ctx, userID)
	if err == ErrNoSession {
		return Session{Stage: StageShipping}, nil
	}
	return sess, err
}

// SubmitShipping validates stage one and advances to payment. Re-submitting
// from a later stage is allowed and keeps the later data (the user went
// Back and edited).
func (s *Service) SubmitShipping(ctx context.Context, userID int, info ShippingInfo) (Session, error) {
	if verr := ValidateShipping(info); verr != nil {
		return Session{}, verr
	}
	sess, err := s.Session(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	sess.Shipping = info
	sess.Stage = StagePayment
	if err := s.store.Put(ctx, userID, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// SubmitPayment validates stage two and advances to review. It requires
// shipping to have been completed first: stages cannot be skipped.
func (s *Service) SubmitPayment(ctx context.Context, userID int, sel PaymentSelection) (Session, error) {
	sess, err := s.store.Get(ctx, userID)
	if err != nil {
		if err == ErrNoSession {
			return Session{}, ErrStageOrder
		}
		return Session{}, err
	}
	if sess.Stage == StageShipping {
		return Session{}, ErrStageOrder
	}
	if verr := ValidatePayment(sel); verr != nil {
		return Session{}, verr
	}
	sess.Payment = sel
	sess.Stage = StageReview
	if err := s.store.Put(ctx, userID, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Back steps to the previous stage. Collected data stays in the session.
func (s *Service) Back(ctx context.Context, userID int) (Session, error) {
	sess, err := s.store.Get(ctx, userID)
	if err != nil {
		if err == ErrNoSession {
			return Session{Stage: StageShipping}, nil
		}
		return Session{}, err
	}
	switch sess.Stage {
	case StageReview:
		sess.Stage = StagePayment
	case StagePayment:
		sess.Stage = StageShipping
	case StageShipping:
		// already at the first stage
	}
	if err := s.store.Put(ctx, userID, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Submit turns the reviewed session plus the caller's cart into an order
// and branches on the payment method. On failure the session is kept so
// the user retries without re-entering anything; on success it is deleted.
func (s *Service) Submit(ctx context.Context, userID int, appliedPoints int) (Outcome, error) {
	sess, err := s.store.Get(ctx, userID)
	if err != nil {
		if err == ErrNoSession {
			return Outcome{}, ErrStageOrder
		}
		return Outcome{}, err
	}
	if sess.Stage != StageReview {
		return Outcome{}, ErrStageOrder
	}

	lines, err := s.carts.Lines(userID)
	if err != nil {
		return Outcome{}, err
	}
	if len(lines) == 0 {
		return Outcome{}, ErrEmptyCart
	}

	items := make([]order.DraftItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.DraftItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	created, err := s.orders.Create(userID, order.Draft{
		Items:           items,
		PaymentMethod:   sess.Payment.Method,
		ShippingAddress: sess.Shipping.FormattedAddress(),
		ShippingPhone:   sess.Shipping.Phone,
		ReceiverName:    sess.Shipping.ReceiverName(),
		AppliedPoints:   appliedPoints,
	})
	if err != nil {
		return Outcome{}, err
	}

	paymentURL := ""
	if s.linker != nil {
		if paymentURL, err = s.linker.PaymentURL(created); err != nil {
			return Outcome{}, err
		}
	}

	outcome := Outcome{OrderID: created.ID, Method: created.PaymentMethod}
	switch created.PaymentMethod {
	case order.MethodMomo:
		if paymentURL == "" {
			return Outcome{}, ErrMissingPaymentURL
		}
		// cart survives until reconciliation settles the attempt
		outcome.Kind = OutcomeRedirect
		outcome.PaymentURL = paymentURL
	case order.MethodVNPay:
		if err := s.urls.Save(ctx, created.ID, paymentURL); err != nil {
			return Outcome{}, err
		}
		outcome.Kind = OutcomeOrderSummary
	case order.MethodBankTransfer:
		outcome.Kind = OutcomePaymentResult
	case order.MethodCreditCard:
		if err := s.carts.Clear(userID); err != nil {
			return Outcome{}, err
		}
		outcome.Kind = OutcomeOrderHistory
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}
