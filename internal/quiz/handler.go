package quiz

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tvu-dev/diamond-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the quiz itself; taking it requires no
// account.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/questions", h.listQuestions)
	app.Post("/api/quiz/answers", h.answers)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	admin := user.RequireAdmin
	app.Post("/api/questions", admin, h.createQuestion)
	app.Put("/api/questions/:id", admin, h.updateQuestion)
	app.Delete("/api/questions/:id", admin, h.deleteQuestion)
	app.Post("/api/options", admin, h.createOption)
	app.Put("/api/options/:id", admin, h.updateOption)
	app.Delete("/api/options/:id", admin, h.deleteOption)
}

func (h *Handler) listQuestions(c *fiber.Ctx) error {
	return c.JSON(h.service.Questions())
}

type questionRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createQuestion(c *fiber.Ctx) error {
	payload := new(questionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}
	q, err := h.service.CreateQuestion(payload.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

func (h *Handler) updateQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	payload := new(questionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	q, err := h.service.UpdateQuestion(id, payload.Name)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(q)
}

func (h *Handler) deleteQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.DeleteQuestion(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type optionRequest struct {
	Label        string `json:"label"`
	SuitableType string `json:"suitableType"`
}

func (h *Handler) createOption(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Query("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid questionId"})
	}
	payload := new(optionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Label == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "label is required"})
	}
	opt, err := h.service.CreateOption(questionID, payload.Label, payload.SuitableType)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(opt)
}

func (h *Handler) updateOption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	payload := new(optionRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	opt, err := h.service.UpdateOption(id, payload.Label, payload.SuitableType)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "option not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(opt)
}

func (h *Handler) deleteOption(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.DeleteOption(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "option not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type answersRequest struct {
	OptionIDs []int `json:"optionIds"`
}

func (h *Handler) answers(c *fiber.Ctx) error {
	payload := new(answersRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	rec, err := h.service.Evaluate(payload.OptionIDs)
	if err != nil {
		if err == ErrNoAnswers {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(rec)
}
