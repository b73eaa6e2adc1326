package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/tvu-dev/diamond-shop-backend/internal/cart"
	"github.com/tvu-dev/diamond-shop-backend/internal/order"
	"github.com/tvu-dev/diamond-shop-backend/internal/payment"
)

type fakeCarts struct {
	lines   []cart.Line
	cleared bool
}

func (f *fakeCarts) Lines(userID int) ([]cart.Line, error) { return f.lines, nil }
func (f *fakeCarts) Clear(userID int) error {
	f.cleared = true
	return nil
}

type fakeOrders struct {
	lastDraft order.Draft
	err       error
}

func (f *fakeOrders) Create(accountID int, draft order.Draft) (order.Order, error) {
	if f.err != nil {
		return order.Order{}, f.err
	}
	f.lastDraft = draft
	return order.Order{
		ID:            11,
		AccountID:     accountID,
		PaymentMethod: draft.PaymentMethod,
		Total:         570000,
	}, nil
}

type fakeLinker struct {
	url    string
	err    error
	called bool
}

func (f *fakeLinker) PaymentURL(o order.Order) (string, error) {
	f.called = true
	return f.url, f.err
}

type fixture struct {
	service *Service
	carts   *fakeCarts
	orders  *fakeOrders
	linker  *fakeLinker
	urls    *payment.MemoryURLStore
}

func newFixture() *fixture {
	carts := &fakeCarts{lines: []cart.Line{
		{ProductID: 1, Name: "Hydrating Serum", UnitPrice: 450000, Quantity: 1},
		{ProductID: 2, Name: "Gentle Cleanser", UnitPrice: 120000, Quantity: 1},
	}}
	orders := &fakeOrders{}
	linker := &fakeLinker{url: "https://gateway.example/pay?ref=11"}
	urls := payment.NewMemoryURLStore()
	return &fixture{
		service: NewService(NewMemoryStore(), carts, orders, linker, urls),
		carts:   carts,
		orders:  orders,
		linker:  linker,
		urls:    urls,
	}
}

func (f *fixture) advanceToReview(t *testing.T, method order.Method) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.service.SubmitShipping(ctx, 7, validShipping()); err != nil {
		t.Fatalf("shipping stage failed: %v", err)
	}
	sel := PaymentSelection{Method: method}
	if method == order.MethodCreditCard {
		sel.CardNumber = "4111111111111111"
		sel.CardExpiry = "09/27"
		sel.CardCVV = "123"
	}
	if _, err := f.service.SubmitPayment(ctx, 7, sel); err != nil {
		t.Fatalf("payment stage failed: %v", err)
	}
}

func TestStagesCannotBeSkipped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.service.SubmitPayment(ctx, 7, PaymentSelection{Method: order.MethodMomo}); !errors.Is(err, ErrStageOrder) {
		t.Fatalf("expected ErrStageOrder for payment before shipping, got %v", err)
	}
	if _, err := f.service.Submit(ctx, 7, 0); !errors.Is(err, ErrStageOrder) {
		t.Fatalf("expected ErrStageOrder for submit before review, got %v", err)
	}

	// shipping alone is not enough to submit
	if _, err := f.service.SubmitShipping(ctx, 7, validShipping()); err != nil {
		t.Fatalf("shipping stage failed: %v", err)
	}
	if _, err := f.service.Submit(ctx, 7, 0); !errors.Is(err, ErrStageOrder) {
		t.Fatalf("expected ErrStageOrder for submit from payment stage, got %v", err)
	}
}

func TestBackKeepsCollectedData(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.advanceToReview(t, order.MethodMomo)

	sess, err := f.service.Back(ctx, 7)
	if err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if sess.Stage != StagePayment {
		t.Fatalf("expected payment stage after back, got %s", sess.Stage)
	}
	if sess.Shipping.City != "Hanoi" {
		t.Fatalf("back must not discard shipping data, got %+v", sess.Shipping)
	}
	if sess.Payment.Method != order.MethodMomo {
		t.Fatalf("back must not discard payment data, got %+v", sess.Payment)
	}

	sess, _ = f.service.Back(ctx, 7)
	if sess.Stage != StageShipping {
		t.Fatalf("expected shipping stage, got %s", sess.Stage)
	}
	sess, _ = f.service.Back(ctx, 7)
	if sess.Stage != StageShipping {
		t.Fatalf("back from the first stage must stay put, got %s", sess.Stage)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodMomo)
	f.carts.lines = nil

	if _, err := f.service.Submit(context.Background(), 7, 0); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitBuildsDraftFromSession(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodBankTransfer)

	if _, err := f.service.Submit(context.Background(), 7, 30); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	d := f.orders.lastDraft
	if len(d.Items) != 2 || d.Items[0].ProductID != 1 || d.Items[1].Quantity != 1 {
		t.Fatalf("draft items wrong: %+v", d.Items)
	}
	if d.ShippingAddress != "12 Ly Thuong Kiet, Hanoi, HN 100000" {
		t.Fatalf("draft address wrong: %q", d.ShippingAddress)
	}
	if d.ReceiverName != "An Tran" || d.ShippingPhone != "0901234567" {
		t.Fatalf("draft receiver wrong: %+v", d)
	}
	if d.AppliedPoints != 30 {
		t.Fatalf("expected 30 applied points, got %d", d.AppliedPoints)
	}
}

func TestSubmitCreditCardClearsCartImmediately(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodCreditCard)
	f.linker.url = ""

	out, err := f.service.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.Kind != OutcomeOrderHistory {
		t.Fatalf("expected order_history outcome, got %s", out.Kind)
	}
	if !f.carts.cleared {
		t.Fatal("credit card settlement must clear the cart immediately")
	}

	// session is gone, a fresh checkout starts at shipping
	sess, err := f.service.Session(context.Background(), 7)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if sess.Stage != StageShipping {
		t.Fatalf("expected fresh session after submit, got stage %s", sess.Stage)
	}
}

func TestSubmitMomoRedirectsWithoutClearing(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodMomo)

	out, err := f.service.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.Kind != OutcomeRedirect {
		t.Fatalf("expected redirect outcome, got %s", out.Kind)
	}
	if out.PaymentURL != f.linker.url {
		t.Fatalf("expected payment url in outcome, got %q", out.PaymentURL)
	}
	if f.carts.cleared {
		t.Fatal("cart must survive until reconciliation for MOMO")
	}
}

func TestSubmitMomoWithoutURLFails(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodMomo)
	f.linker.url = ""

	if _, err := f.service.Submit(context.Background(), 7, 0); !errors.Is(err, ErrMissingPaymentURL) {
		t.Fatalf("expected ErrMissingPaymentURL, got %v", err)
	}

	// the session survives the failure so the user stays on review
	sess, err := f.service.Session(context.Background(), 7)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if sess.Stage != StageReview {
		t.Fatalf("expected review stage after failed submit, got %s", sess.Stage)
	}
}

func TestSubmitVNPayCachesURLForLater(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodVNPay)

	out, err := f.service.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.Kind != OutcomeOrderSummary {
		t.Fatalf("expected order_summary outcome, got %s", out.Kind)
	}
	if out.PaymentURL != "" {
		t.Fatalf("vnpay outcome must not expose the url directly, got %q", out.PaymentURL)
	}
	if f.carts.cleared {
		t.Fatal("cart must survive until reconciliation for VNPAY")
	}

	url, err := f.urls.Take(context.Background(), out.OrderID)
	if err != nil {
		t.Fatalf("expected cached redirect url: %v", err)
	}
	if url != f.linker.url {
		t.Fatalf("cached url wrong: %q", url)
	}
	// single use
	if _, err := f.urls.Take(context.Background(), out.OrderID); err != payment.ErrNoRedirectURL {
		t.Fatalf("expected ErrNoRedirectURL on second take, got %v", err)
	}
}

func TestSubmitBankTransfer(t *testing.T) {
	f := newFixture()
	f.advanceToReview(t, order.MethodBankTransfer)

	out, err := f.service.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.Kind != OutcomePaymentResult {
		t.Fatalf("expected payment_result outcome, got %s", out.Kind)
	}
	if f.carts.cleared {
		t.Fatal("cart must survive until reconciliation for BANK_TRANSFER")
	}
}
