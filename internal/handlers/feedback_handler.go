package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
)

type FeedbackHandler struct {
	Service *lifecycle.Service
}

func NewFeedbackHandler(svc *lifecycle.Service) *FeedbackHandler {
	return &FeedbackHandler{Service: svc}
}

type LeaveFeedbackReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
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

	var req LeaveFeedbackReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	feedback, err := h.Service.LeaveFeedback(p, projectID, lifecycle.LeaveFeedbackInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, feedback)
}

// ListForEditor is public: it backs editor profile pages.
func (h *FeedbackHandler) ListForEditor(c *fiber.Ctx) error {
	editorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid editor ID",
		})
	}

	feedback, err := h.Service.ListEditorFeedback(editorID)
	if err != nil {
		return fail(c, err)
	}

	summary, err := h.Service.EditorFeedbackSummary(editorID)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"summary":  summary,
		"feedback": feedback,
	})
}
