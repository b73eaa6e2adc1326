package payment

import (
	"strings"
	"testing"

	"github.com/tvu-dev/diamond-shop-backend/internal/cart"
	"github.com/tvu-dev/diamond-shop-backend/internal/config"
	"github.com/tvu-dev/diamond-shop-backend/internal/order"
)

type fakeOrderService struct {
	orders    map[int]order.Order
	updates   []order.Status
	updateErr error
}

func (f *fakeOrderService) Create(accountID int, draft order.Draft) (order.Order, error) {
	return order.Order{}, nil
}

func (f *fakeOrderService) GetByID(id int) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderService) UpdateStatus(id int, target order.Status, adminInitiated bool) (order.Order, error) {
	if f.updateErr != nil {
		return order.Order{}, f.updateErr
	}
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	o.Status = target
	f.orders[id] = o
	f.updates = append(f.updates, target)
	return o, nil
}

type fakeCartService struct {
	cleared []int
}

func (f *fakeCartService) Lines(userID int) ([]cart.Line, error) { return nil, nil }
func (f *fakeCartService) Clear(userID int) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakeVerifier struct {
	verified bool
	called   bool
	params   map[string]string
}

func (f *fakeVerifier) VerifyCallback(params map[string]string) bool {
	f.called = true
	f.params = params
	return f.verified
}

type serviceFixture struct {
	service  *Service
	orders   *fakeOrderService
	carts    *fakeCartService
	verifier *fakeVerifier
}

func newServiceFixture(seed ...order.Order) *serviceFixture {
	orders := &fakeOrderService{orders: map[int]order.Order{}}
	for _, o := range seed {
		orders.orders[o.ID] = o
	}
	carts := &fakeCartService{}
	verifier := &fakeVerifier{verified: true}
	vnpay := testVNPay()
	momo := NewMomo(config.MomoConfig{PartnerCode: "MOMOSHOP", SecretKey: "momosecret"})
	return &serviceFixture{
		service:  NewService(verifier, orders, carts, vnpay, momo),
		orders:   orders,
		carts:    carts,
		verifier: verifier,
	}
}

func pendingOrder(id, accountID int, method order.Method) order.Order {
	return order.Order{
		ID:            id,
		AccountID:     accountID,
		Status:        order.StatusPendingPayment,
		PaymentMethod: method,
		Total:         570000,
	}
}

func TestPaymentURLByMethod(t *testing.T) {
	f := newServiceFixture()

	url, err := f.service.PaymentURL(pendingOrder(42, 7, order.MethodVNPay))
	if err != nil {
		t.Fatalf("vnpay url failed: %v", err)
	}
	if !strings.Contains(url, "vnp_TxnRef=42") {
		t.Fatalf("expected order reference in vnpay url, got %s", url)
	}

	url, err = f.service.PaymentURL(pendingOrder(42, 7, order.MethodBankTransfer))
	if err != nil || url != "" {
		t.Fatalf("bank transfer must not produce a url, got %q err %v", url, err)
	}
}

func TestReconcileCallbackPassesParamsThrough(t *testing.T) {
	f := newServiceFixture(pendingOrder(42, 7, order.MethodVNPay))

	params := map[string]string{
		"vnp_TxnRef":       "42",
		"vnp_ResponseCode": "00",
		"vnp_SecureHash":   "abc123",
		"vnp_ExtraField":   "kept",
	}
	if _, err := f.service.Reconcile(ProviderCallback{Params: params}); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	if !f.verifier.called {
		t.Fatal("verifier must be consulted for provider callbacks")
	}
	for k, v := range params {
		if f.verifier.params[k] != v {
			t.Fatalf("param %s not passed through: got %q want %q", k, f.verifier.params[k], v)
		}
	}
}

func TestReconcileCallbackSuccess(t *testing.T) {
	f := newServiceFixture(pendingOrder(42, 7, order.MethodVNPay))

	res, err := f.service.Reconcile(ProviderCallback{
		Params:  map[string]string{"vnp_ResponseCode": "00", "vnp_SecureHash": "x"},
		OrderID: 42,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Order == nil || res.Order.Status != order.StatusPaid {
		t.Fatalf("expected order marked paid, got %+v", res.Order)
	}
	if len(f.carts.cleared) != 1 || f.carts.cleared[0] != 7 {
		t.Fatalf("expected cart cleared for account 7, got %v", f.carts.cleared)
	}
}

func TestReconcileCallbackFailureCancels(t *testing.T) {
	f := newServiceFixture(pendingOrder(42, 7, order.MethodVNPay))

	res, err := f.service.Reconcile(ProviderCallback{
		Params:  map[string]string{"vnp_ResponseCode": "24", "vnp_SecureHash": "x"},
		OrderID: 42,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Success {
		t.Fatalf("expected failure for declined code, got %+v", res)
	}
	if res.Order == nil || res.Order.Status != order.StatusCancel {
		t.Fatalf("expected order cancelled, got %+v", res.Order)
	}
	// failed attempts clear the cart too
	if len(f.carts.cleared) != 1 {
		t.Fatalf("expected cart cleared after failed attempt, got %v", f.carts.cleared)
	}
}

func TestReconcileCallbackUnverifiedSignature(t *testing.T) {
	f := newServiceFixture(pendingOrder(42, 7, order.MethodVNPay))
	f.verifier.verified = false

	res, err := f.service.Reconcile(ProviderCallback{
		Params:  map[string]string{"vnp_ResponseCode": "00", "vnp_SecureHash": "forged"},
		OrderID: 42,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Success {
		t.Fatal("a forged signature must never reconcile as success")
	}
}

func TestReconcileCallbackResolvesOrderFromTxnRef(t *testing.T) {
	f := newServiceFixture(pendingOrder(42, 7, order.MethodVNPay))

	res, err := f.service.Reconcile(ProviderCallback{
		Params: map[string]string{"vnp_TxnRef": "42", "vnp_ResponseCode": "00", "vnp_SecureHash": "x"},
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Order == nil || res.Order.ID != 42 {
		t.Fatalf("expected order resolved from vnp_TxnRef, got %+v", res.Order)
	}
}

func TestReconcileCallbackWithoutOrderReference(t *testing.T) {
	f := newServiceFixture()

	res, err := f.service.Reconcile(ProviderCallback{
		Params: map[string]string{"vnp_ResponseCode": "00", "vnp_SecureHash": "x"},
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Order != nil {
		t.Fatalf("expected no order, got %+v", res.Order)
	}
	if len(f.carts.cleared) != 0 {
		t.Fatalf("no order means no cart to clear, got %v", f.carts.cleared)
	}
}

func TestReconcileCallbackTerminalOrderFallsBack(t *testing.T) {
	paid := pendingOrder(42, 7, order.MethodVNPay)
	paid.Status = order.StatusPaid
	f := newServiceFixture(paid)
	f.orders.updateErr = order.ErrInvalidTransition

	res, err := f.service.Reconcile(ProviderCallback{
		Params:  map[string]string{"vnp_ResponseCode": "00", "vnp_SecureHash": "x"},
		OrderID: 42,
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Order == nil || res.Order.Status != order.StatusPaid {
		t.Fatalf("expected the terminal order to be shown as-is, got %+v", res.Order)
	}
}

func TestReconcileDirectMissingOrderID(t *testing.T) {
	f := newServiceFixture()

	res, err := f.service.Reconcile(DirectVisit{})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Success {
		t.Fatal("missing order id cannot succeed")
	}
	if res.Message != ErrMissingOrderID.Error() {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestReconcileDirectPendingAsyncSynthesizesPending(t *testing.T) {
	f := newServiceFixture(pendingOrder(42, 7, order.MethodVNPay))

	res, err := f.service.Reconcile(DirectVisit{OrderID: 42})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("self-reported payment shows as success, got %+v", res)
	}
	if res.Status != StatusPendingVerification {
		t.Fatalf("expected pending-verification status, got %q", res.Status)
	}
	if f.verifier.called {
		t.Fatal("direct visits must not call the gateway verifier")
	}
	if len(f.orders.updates) != 0 {
		t.Fatalf("direct visits must not change order status, got %v", f.orders.updates)
	}
}

func TestReconcileDirectPaidOrder(t *testing.T) {
	paid := pendingOrder(42, 7, order.MethodVNPay)
	paid.Status = order.StatusPaid
	f := newServiceFixture(paid)

	res, err := f.service.Reconcile(DirectVisit{OrderID: 42})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("paid order must reconcile as success, got %+v", res)
	}
}

func TestReconcileDirectUnpaidClearsCartAnyway(t *testing.T) {
	o := pendingOrder(42, 7, order.MethodCreditCard)
	o.Status = order.StatusInProcess
	f := newServiceFixture(o)

	res, err := f.service.Reconcile(DirectVisit{OrderID: 42})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if res.Success {
		t.Fatalf("unpaid order must not succeed, got %+v", res)
	}
	if len(f.carts.cleared) != 1 || f.carts.cleared[0] != 7 {
		t.Fatalf("cart is cleared whatever the outcome, got %v", f.carts.cleared)
	}
}
