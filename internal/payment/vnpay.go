package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tvu-dev/diamond-shop-backend/internal/config"
)

// ResponseCodeSuccess is VNPay's "transaction approved" code.
const ResponseCodeSuccess = "00"

// VNPay builds and verifies signed gateway URLs. The signature is
// HMAC-SHA512 over the sorted, URL-encoded parameter string, hex encoded.
type VNPay struct {
	cfg config.VNPayConfig
	now func() time.Time
}

func NewVNPay(cfg config.VNPayConfig) *VNPay {
	return &VNPay{cfg: cfg, now: time.Now}
}

// BuildPaymentURL returns the redirect URL for an order. vnp_TxnRef carries
// the order id so the callback can resolve it; the amount is in minor units
// (x100) as the gateway requires.
func (v *VNPay) BuildPaymentURL(orderID int, amount float64) (string, error) {
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    v.cfg.TmnCode,
		"vnp_Locale":     "vn",
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     fmt.Sprintf("%d", orderID),
		"vnp_OrderInfo":  fmt.Sprintf("Thanh toan cho ma GD: %d", orderID),
		"vnp_OrderType":  "other",
		"vnp_Amount":     fmt.Sprintf("%d", int64(amount*100)),
		"vnp_ReturnUrl":  v.cfg.ReturnURL,
		"vnp_CreateDate": v.now().Format("20060102150405"),
	}
	params["vnp_SecureHash"] = v.sign(params)

	return v.cfg.PayURL + "?" + encodeSorted(params), nil
}

// VerifyCallback checks the secure hash on a provider callback. The hash
// fields themselves are excluded from the signed data, everything else is
// passed through exactly as received.
func (v *VNPay) VerifyCallback(params map[string]string) bool {
	provided := params["vnp_SecureHash"]
	if provided == "" {
		return false
	}
	calculated := v.sign(params)
	return strings.EqualFold(calculated, provided)
}

func (v *VNPay) sign(params map[string]string) string {
	signable := make(map[string]string, len(params))
	for k, val := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		signable[k] = val
	}
	data := encodeSorted(signable)

	mac := hmac.New(sha512.New, []byte(v.cfg.SecretKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func encodeSorted(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}
