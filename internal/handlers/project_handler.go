package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
)

type ProjectHandler struct {
	Service *lifecycle.Service
}

func NewProjectHandler(svc *lifecycle.Service) *ProjectHandler {
	return &ProjectHandler{Service: svc}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	projects, err := h.Service.ListProjects(p)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, projects)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid project ID",
		})
	}

	project, err := h.Service.GetProject(p, projectID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, project)
}

func (h *ProjectHandler) MarkComplete(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid project ID",
		})
	}

	project, err := h.Service.MarkComplete(p, projectID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, project)
}
