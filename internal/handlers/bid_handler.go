package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
)

type BidHandler struct {
	Service *lifecycle.Service
}

func NewBidHandler(svc *lifecycle.Service) *BidHandler {
	return &BidHandler{Service: svc}
}

type SubmitBidReq struct {
	Price   int64  `json:"price"`
	Comment string `json:"comment"`
}

func (h *BidHandler) Submit(c *fiber.Ctx) error {
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

	var req SubmitBidReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	bid, err := h.Service.SubmitBid(p, postID, lifecycle.SubmitBidInput{
		Price:   req.Price,
		Comment: req.Comment,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, bid)
}

type DecideBidReq struct {
	Decision string `json:"decision"` // approve / decline
}

func (h *BidHandler) Decide(c *fiber.Ctx) error {
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
	bidID, err := uuid.Parse(c.Params("bidId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid bid ID",
		})
	}

	var req DecideBidReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	bid, project, err := h.Service.DecideBid(p, postID, bidID, lifecycle.BidDecision(req.Decision))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"bid":     bid,
		"project": project,
	})
}

func (h *BidHandler) ListForPost(c *fiber.Ctx) error {
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

	bids, err := h.Service.ListPostBids(p, postID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, bids)
}

func (h *BidHandler) ListMine(c *fiber.Ctx) error {
	p, okP := middleware.Principal(c)
	if !okP {
		return fiber.ErrUnauthorized
	}

	bids, err := h.Service.ListEditorBids(p)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, bids)
}
