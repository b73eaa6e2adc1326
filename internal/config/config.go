package config

import "os"

// Config collects every runtime setting the service reads from the
// environment. cmd/app loads a .env file first, so local overrides work
// without exporting anything.
type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	VNPay VNPayConfig
	Momo  MomoConfig
}

// VNPayConfig holds the merchant credentials and endpoints for the VNPay
// sandbox gateway. Defaults match the sandbox account used in development.
type VNPayConfig struct {
	TmnCode   string
	SecretKey string
	PayURL    string
	ReturnURL string
}

// MomoConfig holds the MoMo wallet gateway settings.
type MomoConfig struct {
	PartnerCode string
	SecretKey   string
	PayURL      string
	ReturnURL   string
}

func Load() Config {
	return Config{
		Addr:        getenv("SHOP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		VNPay: VNPayConfig{
			TmnCode:   getenv("VNPAY_TMN_CODE", "K2035S4C"),
			SecretKey: os.Getenv("VNPAY_SECRET_KEY"),
			PayURL:    getenv("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL: getenv("VNPAY_RETURN_URL", "http://localhost:8080/api/payment/vnpay-verify"),
		},
		Momo: MomoConfig{
			PartnerCode: getenv("MOMO_PARTNER_CODE", "MOMOSHOP"),
			SecretKey:   os.Getenv("MOMO_SECRET_KEY"),
			PayURL:      getenv("MOMO_PAY_URL", "https://test-payment.momo.vn/v2/gateway/pay"),
			ReturnURL:   getenv("MOMO_RETURN_URL", "http://localhost:8080/api/payment/vnpay-verify"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
