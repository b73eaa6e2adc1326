package order

import (
	"strings"
	"testing"

	"github.com/tvu-dev/diamond-shop-backend/internal/product"
	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

type orderFixture struct {
	service  *Service
	products *product.Service
	users    *user.Service
}

func newOrderFixture(points int) *orderFixture {
	users := user.NewService(user.NewInMemoryRepository([]user.Account{
		{ID: 7, Email: "alice@example.com", Username: "alice", Points: points},
	}))
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Hydrating Serum", Price: 450000, Quantity: 10},
		{ID: 2, Name: "Gentle Cleanser", Price: 120000, Quantity: 3},
	}))
	return &orderFixture{
		service:  NewService(NewInMemoryRepository(nil), products, users),
		products: products,
		users:    users,
	}
}

func draftFor(method Method, items ...DraftItem) Draft {
	return Draft{
		Items:           items,
		PaymentMethod:   method,
		ShippingAddress: "12 Ly Thuong Kiet, Hanoi",
		ShippingPhone:   "0901234567",
		ReceiverName:    "An Tran",
	}
}

func TestCreateComputesTotalsAndDecrementsStock(t *testing.T) {
	f := newOrderFixture(0)

	o, err := f.service.Create(7, draftFor(MethodVNPay,
		DraftItem{ProductID: 1, Quantity: 2},
		DraftItem{ProductID: 2, Quantity: 1},
	))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if o.Total != 2*450000+120000 {
		t.Fatalf("unexpected total: %v", o.Total)
	}
	if o.Status != StatusPendingPayment {
		t.Fatalf("async method must start pending, got %s", o.Status)
	}
	if o.Username != "alice" {
		t.Fatalf("expected username snapshot, got %q", o.Username)
	}
	if len(o.Details) != 2 {
		t.Fatalf("expected 2 detail lines, got %d", len(o.Details))
	}
	// detail price is the line subtotal, not the unit price
	if o.Details[0].Price != 900000 || o.Details[0].ProductName != "Hydrating Serum" {
		t.Fatalf("detail snapshot wrong: %+v", o.Details[0])
	}

	p, _ := f.products.GetByID(1)
	if p.Quantity != 8 {
		t.Fatalf("expected stock decremented to 8, got %d", p.Quantity)
	}
}

func TestCreateCreditCardStartsInProcess(t *testing.T) {
	f := newOrderFixture(0)
	o, err := f.service.Create(7, draftFor(MethodCreditCard, DraftItem{ProductID: 2, Quantity: 1}))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if o.Status != StatusInProcess {
		t.Fatalf("card payments settle synchronously, got %s", o.Status)
	}
}

func TestCreateInsufficientStock(t *testing.T) {
	f := newOrderFixture(0)
	_, err := f.service.Create(7, draftFor(MethodVNPay, DraftItem{ProductID: 2, Quantity: 4}))
	if err == nil || !strings.Contains(err.Error(), "is not enough") {
		t.Fatalf("expected insufficient-stock error, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newOrderFixture(0)

	if _, err := f.service.Create(7, draftFor(MethodVNPay)); err != ErrEmptyDraft {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
	if _, err := f.service.Create(7, draftFor("CASH", DraftItem{ProductID: 1, Quantity: 1})); err != ErrInvalidMethod {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
	if _, err := f.service.Create(7, draftFor(MethodVNPay, DraftItem{ProductID: 1, Quantity: 0})); err == nil {
		t.Fatal("expected error for non-positive quantity")
	}
}

func TestCreateCapsAppliedPointsToBalance(t *testing.T) {
	f := newOrderFixture(50)

	d := draftFor(MethodVNPay, DraftItem{ProductID: 2, Quantity: 1})
	d.AppliedPoints = 100
	o, err := f.service.Create(7, d)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if o.AppliedPoints != 50 {
		t.Fatalf("expected points capped to balance 50, got %d", o.AppliedPoints)
	}
	if o.Total != 120000-50 {
		t.Fatalf("expected total reduced by applied points, got %v", o.Total)
	}

	acc, _ := f.users.GetByID(7)
	if acc.Points != 0 {
		t.Fatalf("expected points spent, balance %d", acc.Points)
	}
}

func TestCreateCapsAppliedPointsToTotal(t *testing.T) {
	f := newOrderFixture(200000)

	d := draftFor(MethodVNPay, DraftItem{ProductID: 2, Quantity: 1})
	d.AppliedPoints = 200000
	o, err := f.service.Create(7, d)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if o.AppliedPoints != 120000 {
		t.Fatalf("expected points capped to order total, got %d", o.AppliedPoints)
	}
	if o.Total != 0 {
		t.Fatalf("expected zero total, got %v", o.Total)
	}
}

func TestAdminMarksPendingBankTransferPaid(t *testing.T) {
	f := newOrderFixture(0)
	o, _ := f.service.Create(7, draftFor(MethodBankTransfer, DraftItem{ProductID: 1, Quantity: 1}))

	updated, err := f.service.UpdateStatus(o.ID, StatusPaid, true)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if updated.Status != StatusPaid {
		t.Fatalf("expected PAID, got %s", updated.Status)
	}
	// 450000 / 10000 = 45 loyalty points
	if updated.EarnedPoints != 45 {
		t.Fatalf("expected 45 earned points, got %d", updated.EarnedPoints)
	}
	acc, _ := f.users.GetByID(7)
	if acc.Points != 45 {
		t.Fatalf("expected points credited, balance %d", acc.Points)
	}
}

func TestAdminCannotMarkGatewayOrderPaid(t *testing.T) {
	f := newOrderFixture(0)
	o, _ := f.service.Create(7, draftFor(MethodVNPay, DraftItem{ProductID: 1, Quantity: 1}))

	if _, err := f.service.UpdateStatus(o.ID, StatusPaid, true); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition for gateway order, got %v", err)
	}
}

func TestGatewayMarksPendingOrderPaid(t *testing.T) {
	f := newOrderFixture(0)
	o, _ := f.service.Create(7, draftFor(MethodVNPay, DraftItem{ProductID: 1, Quantity: 1}))

	updated, err := f.service.UpdateStatus(o.ID, StatusPaid, false)
	if err != nil {
		t.Fatalf("gateway settle failed: %v", err)
	}
	if updated.Status != StatusPaid {
		t.Fatalf("expected PAID, got %s", updated.Status)
	}

	// a second settle attempt must not credit points again
	if _, err := f.service.UpdateStatus(o.ID, StatusPaid, false); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition on re-settle, got %v", err)
	}
	acc, _ := f.users.GetByID(7)
	if acc.Points != 45 {
		t.Fatalf("expected single credit of 45 points, balance %d", acc.Points)
	}
}

func TestCancelRules(t *testing.T) {
	f := newOrderFixture(0)
	o, _ := f.service.Create(7, draftFor(MethodVNPay, DraftItem{ProductID: 1, Quantity: 1}))

	updated, err := f.service.UpdateStatus(o.ID, StatusCancel, false)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != StatusCancel {
		t.Fatalf("expected CANCEL, got %s", updated.Status)
	}

	// terminal orders never change again
	if _, err := f.service.UpdateStatus(o.ID, StatusPaid, false); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition on cancelled order, got %v", err)
	}
}

func TestCannotMoveBackwards(t *testing.T) {
	f := newOrderFixture(0)
	o, _ := f.service.Create(7, draftFor(MethodVNPay, DraftItem{ProductID: 1, Quantity: 1}))

	for _, target := range []Status{StatusInProcess, StatusPendingPayment} {
		if _, err := f.service.UpdateStatus(o.ID, target, true); err != ErrInvalidTransition {
			t.Fatalf("expected ErrInvalidTransition for target %s, got %v", target, err)
		}
	}
	if _, err := f.service.UpdateStatus(o.ID, "SHIPPED", true); err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}
