package payment

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tvu-dev/diamond-shop-backend/internal/cart"
	"github.com/tvu-dev/diamond-shop-backend/internal/order"
)

var ErrMissingOrderID = errors.New("order id is missing")

// StatusPendingVerification is the display status for a manual-transfer or
// gateway order visited before any callback arrived: the user says they
// paid, confirmation is still outstanding.
const StatusPendingVerification = "Pending Verification"

// Input discriminates the two ways the result page is reached. A provider
// callback carries the gateway's query parameters; a direct visit only
// knows the order id.
type Input interface {
	reconcileInput()
}

// ProviderCallback is a redirect back from the gateway. Params holds every
// query parameter exactly as received; OrderID is the explicit orderId
// param when the storefront appended one.
type ProviderCallback struct {
	Params  map[string]string
	OrderID int
}

// DirectVisit is a manual navigation to the result page.
type DirectVisit struct {
	OrderID int
}

func (ProviderCallback) reconcileInput() {}
func (DirectVisit) reconcileInput() {}

// Result is the ephemeral outcome of one reconciliation attempt. It is
// derived per request and never persisted.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Status  string       `json:"status,omitempty"`
	Order   *order.Order `json:"order,omitempty"`
}

// Verifier is the gateway-callback check, satisfied by *VNPay.
type Verifier interface {
	VerifyCallback(params map[string]string) bool
}

type Service struct {
	verifier Verifier
	orders   order.ServiceInterface
	carts    cart.ServiceInterface
	vnpay    *VNPay
	momo     *Momo
}

func NewService(verifier Verifier, orders order.ServiceInterface, carts cart.ServiceInterface, vnpay *VNPay, momo *Momo) *Service {
	return &Service{verifier: verifier, orders: orders, carts: carts, vnpay: vnpay, momo: momo}
}

// PaymentURL implements order.PaymentLinker: redirect methods get a signed
// gateway URL, everything else settles without one.
func (s *Service) PaymentURL(o order.Order) (string, error) {
	switch o.PaymentMethod {
	case order.MethodVNPay:
		return s.vnpay.BuildPaymentURL(o.ID, o.Total)
	case order.MethodMomo:
		return s.momo.BuildPaymentURL(o.ID, o.Total)
	case order.MethodBankTransfer, order.MethodCreditCard:
		return "", nil
	}
	return "", nil
}

// Reconcile resolves one visit to the payment-result page into a terminal
// Result. Whatever the outcome, the checkout attempt is over, so the
// owning account's cart is cleared before returning.
//
// NOTE: the storefront copy promises the cart is "restored" when
// verification fails, but the observed behavior has always been an
// unconditional clear. Preserved as-is; see DESIGN.md.
func (s *Service) Reconcile(in Input) (Result, error) {
	var res Result
	switch v := in.(type) {
	case ProviderCallback:
		res = s.reconcileCallback(v)
	case DirectVisit:
		res = s.reconcileDirect(v)
	default:
		return Result{}, fmt.Errorf("unknown reconcile input %T", in)
	}

	if res.Order != nil {
		if err := s.carts.Clear(res.Order.AccountID); err != nil {
			fmt.Printf("warning: could not clear cart for account %d: %v\n", res.Order.AccountID, err)
		}
	}
	return res, nil
}

func (s *Service) reconcileCallback(cb ProviderCallback) Result {
	verified := s.verifier.VerifyCallback(cb.Params)
	code := cb.Params["vnp_ResponseCode"]
	if code == "" {
		code = cb.Params["vnp_TransactionStatus"]
	}
	success := verified && code == ResponseCodeSuccess

	orderID := cb.OrderID
	if orderID == 0 {
		if ref := cb.Params["vnp_TxnRef"]; ref != "" {
			orderID, _ = strconv.Atoi(ref)
		}
	}
	if orderID == 0 {
		return Result{
			Success: success,
			Message: "payment callback processed, but no order reference was provided",
		}
	}

	target := order.StatusCancel
	if success {
		target = order.StatusPaid
	}
	updated, err := s.orders.UpdateStatus(orderID, target, false)
	if err != nil {
		// terminal orders stay as they are; still show them
		fetched, fetchErr := s.orders.GetByID(orderID)
		if fetchErr != nil {
			return Result{Success: false, Message: "failed to load order details"}
		}
		updated = fetched
	}

	msg := "Your payment has been verified successfully."
	if !success {
		msg = "We couldn't verify your payment. Please try again."
	}
	return Result{Success: success, Message: msg, Order: &updated}
}

func (s *Service) reconcileDirect(v DirectVisit) Result {
	if v.OrderID == 0 {
		return Result{Success: false, Message: ErrMissingOrderID.Error()}
	}
	o, err := s.orders.GetByID(v.OrderID)
	if err != nil {
		return Result{Success: false, Message: "failed to load order details"}
	}

	// a direct visit for an async method means the user self-reported
	// payment; no verify call is made, the order stays pending until the
	// gateway or an admin confirms it
	if o.Status == order.StatusPendingPayment && o.PaymentMethod.Async() {
		return Result{
			Success: true,
			Message: "Your payment is awaiting confirmation.",
			Status:  StatusPendingVerification,
			Order:   &o,
		}
	}

	success := o.Status == order.StatusPaid
	msg := "Your payment has been verified successfully."
	if !success {
		msg = "We couldn't verify your payment. Please try again."
	}
	return Result{Success: success, Message: msg, Order: &o}
}
