package order

import (
	"strconv"
	"strings"
)

// Status is the closed set of order states. PAID and CANCEL are terminal.
type Status string

const (
	StatusInProcess      Status = "IN_PROCESS"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusCancel         Status = "CANCEL"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInProcess, StatusPendingPayment, StatusPaid, StatusCancel:
		return true
	}
	return false
}

// Method is the closed set of payment methods. Branching on methods is done
// with exhaustive switches so a new method is a compile-visible change.
type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodMomo         Method = "MOMO"
	MethodVNPay        Method = "VNPAY"
	MethodCreditCard   Method = "CREDIT_CARD"
)

func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodMomo, MethodVNPay, MethodCreditCard:
		return true
	}
	return false
}

// Async reports whether payment completes outside the shop (gateway redirect
// or manual transfer) rather than synchronously at submission.
func (m Method) Async() bool {
	switch m {
	case MethodBankTransfer, MethodMomo, MethodVNPay:
		return true
	case MethodCreditCard:
		return false
	}
	return false
}

// Detail is one purchased line, snapshotted at order time. Price is the
// line subtotal (unit price times quantity), matching what the storefront
// displays without recomputation.
type Detail struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Order struct {
	ID              int      `json:"id"`
	AccountID       int      `json:"accountId"`
	Username        string   `json:"username"`
	Status          Status   `json:"status"`
	Total           float64  `json:"total"`
	PaymentMethod   Method   `json:"paymentMethod"`
	ShippingAddress string   `json:"shippingAddress"`
	ShippingPhone   string   `json:"shippingPhone"`
	ReceiverName    string   `json:"receiverName"`
	AppliedPoints   int      `json:"appliedPoints"`
	EarnedPoints    int      `json:"earnedPoints"`
	Details         []Detail `json:"details"`
	CreatedAt       string   `json:"createdAt"`
}

// CanMarkPaid gates the admin "verify payment" action: only manual bank
// transfers awaiting confirmation qualify.
func (o Order) CanMarkPaid() bool {
	return o.Status == StatusPendingPayment && o.PaymentMethod == MethodBankTransfer
}

// CanCancel gates cancellation: terminal orders stay terminal.
func (o Order) CanCancel() bool {
	return o.Status == StatusInProcess || o.Status == StatusPendingPayment
}

// FilterOptions drive the admin order listing. The listing model is a full
// fetch filtered in process; there is no server-side paging contract.
type FilterOptions struct {
	Search   string
	Status   string // all | pending | paid | processing | cancelled
	Page     int    // zero-based
	PageSize int
}

type FilterResult struct {
	Orders       []Order
	TotalMatched int
}

var statusCategories = map[string]Status{
	"pending":    StatusPendingPayment,
	"paid":       StatusPaid,
	"processing": StatusInProcess,
	"cancelled":  StatusCancel,
}

// Filter applies the admin search box and status tab to a full order list
// and pages over the filtered set. Search matches the order id, the customer
// username and the shipping address, case-insensitively.
func Filter(orders []Order, opts FilterOptions) FilterResult {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Page < 0 {
		opts.Page = 0
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	wantStatus, narrow := statusCategories[opts.Status]

	matched := make([]Order, 0, len(orders))
	for _, o := range orders {
		if narrow && o.Status != wantStatus {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		matched = append(matched, o)
	}

	start := opts.Page * opts.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return FilterResult{Orders: matched[start:end], TotalMatched: len(matched)}
}

func matchesSearch(o Order, search string) bool {
	if strings.Contains(strconv.Itoa(o.ID), search) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Username), search) {
		return true
	}
	return strings.Contains(strings.ToLower(o.ShippingAddress), search)
}
