package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

// PaymentLinker produces a gateway redirect URL for orders whose method
// requires one. Implemented by the payment service.
type PaymentLinker interface {
	PaymentURL(o Order) (string, error)
}

type Handler struct {
	service *Service
	linker  PaymentLinker
}

func NewHandler(service *Service, linker PaymentLinker) *Handler {
	return &Handler{service: service, linker: linker}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders/create", h.create)
	app.Get("/api/orders/my-orders", h.myOrders)
	app.Get("/api/orders/:id<[0-9]+>", h.get)
	app.Get("/api/orders", user.RequireAdmin, h.listAll)
	app.Patch("/api/orders/:id<[0-9]+>", user.RequireAdmin, h.updateStatus)
}

// createResponse mirrors what the storefront branches on after submission:
// the order id always, a gateway URL only for redirect methods.
type createResponse struct {
	OrderID    int    `json:"orderId"`
	PaymentURL string `json:"paymentUrl,omitempty"`
	Order      Order  `json:"order"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	draft := new(Draft)
	if err := c.BodyParser(draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(userID, *draft)
	if err != nil {
		switch err {
		case ErrEmptyDraft, ErrInvalidMethod:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	resp := createResponse{OrderID: created.ID, Order: created}
	if h.linker != nil {
		url, err := h.linker.PaymentURL(created)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		resp.PaymentURL = url
	}
	return c.JSON(resp)
}

func (h *Handler) myOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByAccount(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	o, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	if o.AccountID != userID && !user.IsAdminCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
	}
	return c.JSON(o)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	// plain GET /api/orders returns the full list; the filtered shape is
	// opt-in via query params so the storefront admin page can stay on
	// its client-side model
	if c.Query("search") == "" && c.Query("status") == "" && c.Query("page") == "" {
		return c.JSON(orders)
	}

	page, _ := strconv.Atoi(c.Query("page", "0"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	result := Filter(orders, FilterOptions{
		Search:   c.Query("search"),
		Status:   c.Query("status", "all"),
		Page:     page,
		PageSize: pageSize,
	})
	return c.JSON(fiber.Map{
		"orders": result.Orders,
		"total":  result.TotalMatched,
	})
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	target := Status(c.Query("status"))
	if !target.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid status"})
	}

	updated, err := h.service.UpdateStatus(id, target, true)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidTransition:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}
