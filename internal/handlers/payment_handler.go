package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
	"github.com/edithub/edithub-api/internal/models"
)

type PaymentHandler struct {
	Service *lifecycle.Service
}

func NewPaymentHandler(svc *lifecycle.Service) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

type CapturePaymentReq struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"` // card / wallet
	Card   *struct {
		Number   string `json:"number"`
		CVV      string `json:"cvv"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
	} `json:"card"`
}

func (h *PaymentHandler) Capture(c *fiber.Ctx) error {
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

	var req CapturePaymentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	in := lifecycle.CapturePaymentInput{
		Amount: req.Amount,
		Method: models.PaymentMethod(req.Method),
	}
	if req.Card != nil {
		in.Card = &lifecycle.CardDetails{
			Number:   req.Card.Number,
			CVV:      req.Card.CVV,
			ExpMonth: req.Card.ExpMonth,
			ExpYear:  req.Card.ExpYear,
		}
	}

	payment, err := h.Service.CapturePayment(p, projectID, in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, payment)
}
