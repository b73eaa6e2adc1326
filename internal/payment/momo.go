package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/tvu-dev/diamond-shop-backend/internal/config"
)

// Momo builds redirect URLs for the MoMo wallet gateway. Each request gets a
// fresh request id; the signature is HMAC-SHA256 over the raw query.
type Momo struct {
	cfg config.MomoConfig
}

func NewMomo(cfg config.MomoConfig) *Momo {
	return &Momo{cfg: cfg}
}

func (m *Momo) BuildPaymentURL(orderID int, amount float64) (string, error) {
	requestID := uuid.NewString()

	q := url.Values{}
	q.Set("partnerCode", m.cfg.PartnerCode)
	q.Set("requestId", requestID)
	q.Set("orderId", fmt.Sprintf("%d", orderID))
	q.Set("amount", fmt.Sprintf("%d", int64(amount)))
	q.Set("orderInfo", fmt.Sprintf("Thanh toan don hang %d", orderID))
	q.Set("returnUrl", m.cfg.ReturnURL)
	q.Set("requestType", "captureWallet")

	raw := q.Encode()
	mac := hmac.New(sha256.New, []byte(m.cfg.SecretKey))
	mac.Write([]byte(raw))
	q.Set("signature", hex.EncodeToString(mac.Sum(nil)))

	return m.cfg.PayURL + "?" + q.Encode(), nil
}
