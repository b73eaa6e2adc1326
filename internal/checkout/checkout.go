package checkout

import (
	"regexp"
	"strings"

	"github.com/tvu-dev/diamond-shop-backend/internal/order"
)

// Stage is the checkout position. Stages are strictly ordered: shipping,
// then payment, then review. Skipping ahead is rejected; Back moves one
// stage up without discarding anything already collected.
type Stage string

const (
	StageShipping Stage = "shipping"
	StagePayment  Stage = "payment"
	StageReview   Stage = "review"
)

// ShippingInfo is held only for the lifetime of the checkout session; it is
// never persisted beyond it.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
}

// FormattedAddress renders the single shipping-address string stored on the
// order: "address, city, state zip".
func (s ShippingInfo) FormattedAddress() string {
	return s.Address + ", " + s.City + ", " + s.State + " " + s.ZipCode
}

func (s ShippingInfo) ReceiverName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// PaymentSelection carries the chosen method plus the card fields that are
// only meaningful (and only validated) for CREDIT_CARD.
type PaymentSelection struct {
	Method     order.Method `json:"method"`
	CardNumber string       `json:"cardNumber,omitempty"`
	CardExpiry string       `json:"cardExpiry,omitempty"`
	CardCVV    string       `json:"cardCvv,omitempty"`
}

// Session is the transient, server-held state of one checkout attempt.
type Session struct {
	Stage    Stage            `json:"stage"`
	Shipping ShippingInfo     `json:"shipping"`
	Payment  PaymentSelection `json:"payment"`
}

// ValidationError reports per-field failures. It blocks the stage
// transition; the caller renders the fields inline.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// ValidateShipping requires every field to be a non-blank string.
func ValidateShipping(info ShippingInfo) *ValidationError {
	fields := map[string]string{}
	require := func(name, value, message string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = message
		}
	}
	require("firstName", info.FirstName, "First name is required")
	require("lastName", info.LastName, "Last name is required")
	require("address", info.Address, "Address is required")
	require("city", info.City, "City is required")
	require("state", info.State, "State is required")
	require("zipCode", info.ZipCode, "ZIP code is required")
	require("phone", info.Phone, "Phone number is required")

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePayment checks the method and, for CREDIT_CARD only, the card
// fields. Other methods carry no extra required fields.
func ValidatePayment(sel PaymentSelection) *ValidationError {
	fields := map[string]string{}
	if !sel.Method.Valid() {
		fields["method"] = "Payment method is required"
		return &ValidationError{Fields: fields}
	}

	switch sel.Method {
	case order.MethodCreditCard:
		if !cardNumberPattern.MatchString(sel.CardNumber) {
			fields["cardNumber"] = "Card number must be 16 digits"
		}
		if !cardExpiryPattern.MatchString(sel.CardExpiry) {
			fields["cardExpiry"] = "Expiry must be MM/YY"
		}
		if !cardCVVPattern.MatchString(sel.CardCVV) {
			fields["cardCvv"] = "CVV must be 3 or 4 digits"
		}
	case order.MethodBankTransfer, order.MethodMomo, order.MethodVNPay:
		// nothing extra to collect
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
