package product

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.list)
	app.Get("/api/products/search", h.search)
	app.Get("/api/products/:id<[0-9]+>", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", user.RequireAdmin, h.create)
	app.Put("/api/products/:id<[0-9]+>", user.RequireAdmin, h.update)
	app.Delete("/api/products/:id<[0-9]+>", user.RequireAdmin, h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) search(c *fiber.Ctx) error {
	return c.JSON(h.service.Search(c.Query("q")))
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

type productRequest struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Quantity      int      `json:"quantity"`
	CategoryID    int      `json:"categoryId"`
	SuitableTypes []string `json:"suitableTypes"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required and price must be non-negative"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Product{
		Name:          payload.Name,
		Price:         payload.Price,
		Image:         payload.Image,
		Description:   payload.Description,
		Quantity:      payload.Quantity,
		CategoryID:    payload.CategoryID,
		SuitableTypes: payload.SuitableTypes,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Product{
		Name:          payload.Name,
		Price:         payload.Price,
		Image:         payload.Image,
		Description:   payload.Description,
		Quantity:      payload.Quantity,
		CategoryID:    payload.CategoryID,
		SuitableTypes: payload.SuitableTypes,
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
