package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
)

type CategoryHandler struct {
	Service *lifecycle.Service
}

func NewCategoryHandler(svc *lifecycle.Service) *CategoryHandler {
	return &CategoryHandler{Service: svc}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.Service.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, categories)
}

type CreateCategoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	var req CreateCategoryReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	category, err := h.Service.CreateCategory(p, lifecycle.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, category)
}
