package lifecycle

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
)

type LeaveFeedbackInput struct {
	Rating  int
	Comment string
}

// LeaveFeedback records the owning customer's one-time rating of a completed,
// paid project. A second attempt is a conflict, backed by the composite
// unique index on (project_id, customer_id).
func (s *Service) LeaveFeedback(actor models.Principal, projectID uuid.UUID, in LeaveFeedbackInput) (*models.Feedback, error) {
	if err := s.requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}

	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.ValidationMsg("rating", "Rating must be between 1 and 5")
	}

	var feedback models.Feedback
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Clauses(forUpdate()).First(&project, "id = ?", projectID).Error; err != nil {
			return notFoundOr(err, "project")
		}
		if project.CustomerID != actor.ID {
			return apperr.Authorization("")
		}
		if project.Status != models.ProjectStatusCompleted {
			return apperr.InvalidStatef("project is %s, feedback requires a completed project", project.Status)
		}

		var paid int64
		if err := tx.Model(&models.Payment{}).
			Where("project_id = ?", projectID).
			Count(&paid).Error; err != nil {
			return err
		}
		if paid == 0 {
			return apperr.InvalidState("project has no captured payment")
		}

		var existing int64
		if err := tx.Model(&models.Feedback{}).
			Where("project_id = ? AND customer_id = ?", projectID, actor.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.Conflict("feedback already submitted for this project")
		}

		feedback = models.Feedback{
			ProjectID:  project.ID,
			CustomerID: project.CustomerID,
			EditorID:   project.EditorID,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		if err := tx.Create(&feedback).Error; err != nil {
			return duplicateOr(err, "feedback already submitted for this project")
		}

		s.notify(project.CustomerID, project.EditorID, realtime.Event{
			Type:    realtime.EventFeedbackLeft,
			Payload: feedback,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &feedback, nil
}

// FeedbackSummary aggregates an editor's received ratings.
type FeedbackSummary struct {
	EditorID      uuid.UUID `json:"editor_id"`
	AverageRating float64   `json:"average_rating"`
	FeedbackCount int64     `json:"feedback_count"`
}

func (s *Service) EditorFeedbackSummary(editorID uuid.UUID) (*FeedbackSummary, error) {
	summary := FeedbackSummary{EditorID: editorID}

	err := s.DB.Model(&models.Feedback{}).
		Where("editor_id = ?", editorID).
		Count(&summary.FeedbackCount).Error
	if err != nil {
		return nil, err
	}

	if summary.FeedbackCount > 0 {
		err = s.DB.Model(&models.Feedback{}).
			Where("editor_id = ?", editorID).
			Select("AVG(rating)").
			Scan(&summary.AverageRating).Error
		if err != nil {
			return nil, err
		}
	}

	return &summary, nil
}

// ListEditorFeedback returns an editor's received feedback, newest first.
func (s *Service) ListEditorFeedback(editorID uuid.UUID) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.DB.
		Preload("Customer").
		Where("editor_id = ?", editorID).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
