package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
)

type PostHandler struct {
	Service *lifecycle.Service
}

func NewPostHandler(svc *lifecycle.Service) *PostHandler {
	return &PostHandler{Service: svc}
}

type CreatePostReq struct {
	CategoryID  string `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Budget      int64  `json:"budget"`
	Duration    int    `json:"duration"`
	Deadline    string `json:"deadline"` // optional, ISO date; derived from duration when empty
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	var req CreatePostReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	categoryID, _ := uuid.Parse(req.CategoryID)

	in := lifecycle.CreatePostInput{
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Duration:    req.Duration,
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			errs := apperr.FieldErrors{}
			errs.Add("deadline", "Deadline must be a valid date (YYYY-MM-DD)")
			return validationFail(c, errs)
		}
		in.Deadline = &deadline
	}

	post, err := h.Service.CreatePost(p, in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, post)
}

// ListOpen is the editor-facing browse view; ?category=<id> filters it.
func (h *PostHandler) ListOpen(c *fiber.Ctx) error {
	var categoryID *uuid.UUID
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid category ID",
			})
		}
		categoryID = &id
	}

	posts, err := h.Service.ListOpenPosts(categoryID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, posts)
}

func (h *PostHandler) ListMine(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	posts, err := h.Service.ListCustomerPosts(p)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, posts)
}

func (h *PostHandler) GetDetail(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid post ID",
		})
	}

	post, err := h.Service.GetPost(p, postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}

func (h *PostHandler) Close(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid post ID",
		})
	}

	post, err := h.Service.ClosePost(p, postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, post)
}
