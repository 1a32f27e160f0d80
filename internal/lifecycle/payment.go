package lifecycle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
)

// CardDetails is validated structurally only. No gateway is consulted:
// capture always succeeds once validation passes.
type CardDetails struct {
	Number   string `json:"number"`
	CVV      string `json:"cvv"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

type CapturePaymentInput struct {
	Amount int64
	Method models.PaymentMethod
	Card   *CardDetails // required for the card method
}

// ValidateCard checks the structural card constraints: 16-digit number,
// 3-digit CVV, expiry in the future.
func ValidateCard(card *CardDetails, now time.Time) apperr.FieldErrors {
	fields := apperr.FieldErrors{}
	if card == nil {
		fields.Add("card", "Card details are required")
		return fields
	}

	if len(card.Number) != 16 || !allDigits(card.Number) {
		fields.Add("card_number", "Card number must be 16 digits")
	}
	if len(card.CVV) != 3 || !allDigits(card.CVV) {
		fields.Add("cvv", "CVV must be 3 digits")
	}

	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		fields.Add("expiry", "Expiry month must be between 1 and 12")
	} else {
		// card expires at the end of its expiry month
		expiry := time.Date(card.ExpYear, time.Month(card.ExpMonth), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, 0)
		if !expiry.After(now) {
			fields.Add("expiry", "Card has expired")
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// CapturePayment records the project's single payment and completes both the
// project and its post. The unique index on payments.project_id makes the
// create fail under a concurrent double capture even if both requests pass
// the existence check.
func (s *Service) CapturePayment(actor models.Principal, projectID uuid.UUID, in CapturePaymentInput) (*models.Payment, error) {
	if err := s.requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}

	fields := apperr.FieldErrors{}
	if in.Amount <= 0 {
		fields.Add("amount", "Amount must be positive")
	}
	switch in.Method {
	case models.PaymentMethodCard:
		if cardFields := ValidateCard(in.Card, time.Now()); cardFields != nil {
			for k, msgs := range cardFields {
				fields[k] = msgs
			}
		}
	case models.PaymentMethodWallet:
	default:
		fields.Add("method", "Unsupported payment method")
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	var payment models.Payment
	var project models.Project

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate()).First(&project, "id = ?", projectID).Error; err != nil {
			return notFoundOr(err, "project")
		}
		if project.CustomerID != actor.ID {
			return apperr.Authorization("")
		}

		// duplicate capture is a conflict even though the project has
		// already left payment_pending
		var existing int64
		if err := tx.Model(&models.Payment{}).
			Where("project_id = ?", projectID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Conflict("payment already captured for this project")
		}

		if project.Status != models.ProjectStatusPaymentPending {
			return apperr.InvalidStatef("project is %s, payment requires payment_pending", project.Status)
		}

		payment = models.Payment{
			ProjectID:  project.ID,
			CustomerID: project.CustomerID,
			EditorID:   project.EditorID,
			Amount:     in.Amount,
			Method:     in.Method,
		}
		if in.Method == models.PaymentMethodCard {
			snapshot, err := json.Marshal(map[string]string{
				"last4":  in.Card.Number[12:],
				"expiry": fmt.Sprintf("%02d/%d", in.Card.ExpMonth, in.Card.ExpYear),
			})
			if err != nil {
				return err
			}
			payment.CardSnapshot = snapshot
		}
		if err := tx.Create(&payment).Error; err != nil {
			return duplicateOr(err, "payment already captured for this project")
		}

		project.Status = models.ProjectStatusCompleted
		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		// cascade: the owning post leaves in_progress with its project
		return tx.Model(&models.Post{}).
			Where("id = ?", project.PostID).
			Update("status", models.PostStatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(project.CustomerID, project.EditorID, realtime.Event{
		Type:    realtime.EventProjectStatus,
		Payload: project,
	})

	return &payment, nil
}
