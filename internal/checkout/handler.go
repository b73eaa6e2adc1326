package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/checkout", h.session)
	app.Post("/api/checkout/shipping", h.shipping)
	app.Post("/api/checkout/payment", h.payment)
	app.Post("/api/checkout/back", h.back)
	app.Post("/api/checkout/submit", h.submit)
}

func (h *Handler) session(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	sess, err := h.service.Session(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sess)
}

func (h *Handler) shipping(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	var info ShippingInfo
	if err := c.BodyParser(&info); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	sess, err := h.service.SubmitShipping(c.Context(), userID, info)
	if err != nil {
		return stageError(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) payment(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	var sel PaymentSelection
	if err := c.BodyParser(&sel); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	sess, err := h.service.SubmitPayment(c.Context(), userID, sel)
	if err != nil {
		return stageError(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) back(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	sess, err := h.service.Back(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sess)
}

type submitRequest struct {
	AppliedPoints int `json:"point"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	var req submitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
		}
	}
	outcome, err := h.service.Submit(c.Context(), userID, req.AppliedPoints)
	if err != nil {
		return stageError(c, err)
	}
	return c.JSON(outcome)
}

func stageError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": verr.Error(),
			"fields":  verr.Fields,
		})
	}
	switch {
	case errors.Is(err, ErrStageOrder), errors.Is(err, ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrMissingPaymentURL):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
