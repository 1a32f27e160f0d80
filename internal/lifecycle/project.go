package lifecycle

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
)

// MarkComplete is the assigned editor signalling delivery: the project moves
// from in_progress to payment_pending.
func (s *Service) MarkComplete(actor models.Principal, projectID uuid.UUID) (*models.Project, error) {
	if err := s.requireRole(actor, models.RoleEditor); err != nil {
		return nil, err
	}

	var project models.Project
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate()).First(&project, "id = ?", projectID).Error; err != nil {
			return notFoundOr(err, "project")
		}
		if project.EditorID != actor.ID {
			return apperr.Authorization("")
		}
		if project.Status != models.ProjectStatusInProgress {
			return apperr.InvalidStatef("project is %s, only in_progress projects can be marked complete", project.Status)
		}

		project.Status = models.ProjectStatusPaymentPending
		return tx.Save(&project).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(project.CustomerID, project.EditorID, realtime.Event{
		Type:    realtime.EventProjectStatus,
		Payload: project,
	})

	return &project, nil
}

// GetProject loads a project with its artifacts for either participant.
func (s *Service) GetProject(actor models.Principal, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.DB.
		Preload("Post").
		Preload("Post.Category").
		Preload("Customer").
		Preload("Editor").
		Preload("Payment").
		Preload("Documents").
		Preload("Feedback").
		First(&project, "id = ?", projectID).Error
	if err != nil {
		return nil, notFoundOr(err, "project")
	}

	if !s.canViewProject(actor, &project) {
		return nil, apperr.Authorization("")
	}
	return &project, nil
}

func (s *Service) canViewProject(actor models.Principal, project *models.Project) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return project.CustomerID == actor.ID
	case models.RoleEditor:
		return project.EditorID == actor.ID
	}
	return false
}

// ListProjects returns the acting principal's projects, newest first.
func (s *Service) ListProjects(actor models.Principal) ([]models.Project, error) {
	q := s.DB.
		Preload("Post").
		Preload("Payment").
		Preload("Feedback").
		Order("created_at DESC")

	switch actor.Role {
	case models.RoleCustomer:
		q = q.Preload("Editor").Where("customer_id = ?", actor.ID)
	case models.RoleEditor:
		q = q.Preload("Customer").Where("editor_id = ?", actor.ID)
	case models.RoleAdmin:
		q = q.Preload("Customer").Preload("Editor")
	default:
		return nil, apperr.Authorization("")
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
