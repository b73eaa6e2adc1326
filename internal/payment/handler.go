package payment

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

type Handler struct {
	service *Service
	urls    URLStore
}

func NewHandler(service *Service, urls URLStore) *Handler {
	return &Handler{service: service, urls: urls}
}

// RegisterPublicRoutes exposes the gateway callback. The provider redirects
// the browser here without our bearer token, so it cannot sit behind the
// JWT middleware.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/payment/vnpay-verify", h.vnpayVerify)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/payment/result", h.result)
	app.Get("/api/payment/redirect-url", h.redirectURL)
}

func (h *Handler) vnpayVerify(c *fiber.Ctx) error {
	// every query parameter is passed through to verification unmodified
	params := c.Queries()

	orderID := 0
	if raw := c.Query("orderId"); raw != "" {
		orderID, _ = strconv.Atoi(raw)
	}

	res, err := h.service.Reconcile(ProviderCallback{Params: params, OrderID: orderID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(res)
}

func (h *Handler) result(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orderID := 0
	if raw := c.Query("orderId"); raw != "" {
		orderID, _ = strconv.Atoi(raw)
	}

	res, err := h.service.Reconcile(DirectVisit{OrderID: orderID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if res.Order != nil && res.Order.AccountID != userID && !user.IsAdminCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	}

	// the attempt is over even when the order could not be resolved; make
	// sure the caller's cart is cleaned up in that case too
	if res.Order == nil {
		if err := h.service.carts.Clear(userID); err != nil {
			fmt.Printf("warning: could not clear cart for account %d: %v\n", userID, err)
		}
	}

	if !res.Success && res.Order == nil {
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}
	return c.JSON(res)
}

func (h *Handler) redirectURL(c *fiber.Ctx) error {
	if _, err := user.GetUserIDFromCtx(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Query("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid orderId"})
	}

	url, err := h.urls.Take(c.Context(), orderID)
	if err != nil {
		if err == ErrNoRedirectURL {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no payment url cached for this order"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"paymentUrl": url})
}
