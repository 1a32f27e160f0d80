package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
)

type DocumentHandler struct {
	Service *lifecycle.Service
}

func NewDocumentHandler(svc *lifecycle.Service) *DocumentHandler {
	return &DocumentHandler{Service: svc}
}

type ReserveUploadReq struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Reserve starts the two-phase upload: the response carries the key and a
// time-limited PUT URL the client uploads to directly.
func (h *DocumentHandler) Reserve(c *fiber.Ctx) error {
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

	var req ReserveUploadReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	res, err := h.Service.ReserveUpload(c.Context(), p, projectID, req.Filename, req.ContentType)
	if err != nil {
		return fail(c, err)
	}
	return created(c, res)
}

type ConfirmUploadReq struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Confirm finishes the two-phase upload: the object is HEAD-checked in S3
// before the document row appears.
func (h *DocumentHandler) Confirm(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	var req ConfirmUploadReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	doc, err := h.Service.ConfirmUpload(c.Context(), p, lifecycle.ConfirmUploadInput{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, doc)
}

func (h *DocumentHandler) ListForProject(c *fiber.Ctx) error {
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

	docs, err := h.Service.ListProjectDocuments(p, projectID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, docs)
}
