package lifecycle

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
)

type SubmitBidInput struct {
	Price   int64
	Comment string
}

// SubmitBid places an editor's bid on an open post. One bid per editor per
// post, checked here and backed by the composite unique index.
func (s *Service) SubmitBid(actor models.Principal, postID uuid.UUID, in SubmitBidInput) (*models.Bid, error) {
	if err := s.requireRole(actor, models.RoleEditor); err != nil {
		return nil, err
	}

	if in.Price <= 0 {
		return nil, apperr.ValidationMsg("price", "Price must be positive")
	}

	var bid models.Bid
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return notFoundOr(err, "post")
		}
		if post.Status != models.PostStatusOpen {
			return apperr.InvalidStatef("post is %s, bidding is only allowed while open", post.Status)
		}

		var count int64
		if err := tx.Model(&models.Bid{}).
			Where("post_id = ? AND editor_id = ?", postID, actor.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("you already submitted a bid on this post")
		}

		bid = models.Bid{
			PostID:   postID,
			EditorID: actor.ID,
			Price:    in.Price,
			Comment:  in.Comment,
		}
		if err := tx.Create(&bid).Error; err != nil {
			return duplicateOr(err, "you already submitted a bid on this post")
		}

		s.notify(post.CustomerID, actor.ID, realtime.Event{
			Type:    realtime.EventBidSubmitted,
			Payload: bid,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &bid, nil
}

type BidDecision string

const (
	DecisionApprove BidDecision = "approve"
	DecisionDecline BidDecision = "decline"
)

// DecideBid is the owning customer's approve/decline action. Approval flips
// the bid, creates the project and moves the post to in_progress in a single
// transaction; once any bid on the post is approved, every further decision
// is rejected regardless of what the UI showed.
func (s *Service) DecideBid(actor models.Principal, postID, bidID uuid.UUID, decision BidDecision) (*models.Bid, *models.Project, error) {
	if err := s.requireRole(actor, models.RoleCustomer); err != nil {
		return nil, nil, err
	}

	if decision != DecisionApprove && decision != DecisionDecline {
		return nil, nil, apperr.ValidationMsg("decision", "Decision must be approve or decline")
	}

	var bid models.Bid
	var project *models.Project

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(forUpdate()).First(&post, "id = ?", postID).Error; err != nil {
			return notFoundOr(err, "post")
		}
		if post.CustomerID != actor.ID {
			return apperr.Authorization("")
		}
		if post.Status != models.PostStatusOpen {
			return apperr.InvalidStatef("post is %s, bids can no longer be decided", post.Status)
		}

		if err := tx.First(&bid, "id = ? AND post_id = ?", bidID, postID).Error; err != nil {
			return notFoundOr(err, "bid")
		}
		if bid.Approved || bid.Declined {
			return apperr.InvalidState("bid has already been decided")
		}

		var approvedCount int64
		if err := tx.Model(&models.Bid{}).
			Where("post_id = ? AND approved = true", postID).
			Count(&approvedCount).Error; err != nil {
			return err
		}
		if approvedCount > 0 {
			return apperr.InvalidState("post already has an approved bid")
		}

		if decision == DecisionDecline {
			bid.Declined = true
			return tx.Save(&bid).Error
		}

		// Approve: bid update, project create and post update commit together.
		bid.Approved = true
		if err := tx.Save(&bid).Error; err != nil {
			return err
		}

		project = &models.Project{
			PostID:     post.ID,
			CustomerID: post.CustomerID,
			EditorID:   bid.EditorID,
			Status:     models.ProjectStatusInProgress,
		}
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		post.Status = models.PostStatusInProgress
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.notify(actor.ID, bid.EditorID, realtime.Event{
		Type: realtime.EventBidDecided,
		Payload: map[string]interface{}{
			"bid":      bid,
			"decision": decision,
			"project":  project,
		},
	})

	return &bid, project, nil
}

// ListPostBids returns the bids on a post. Only the owning customer sees all
// of them; an editor sees only their own.
func (s *Service) ListPostBids(actor models.Principal, postID uuid.UUID) ([]models.Bid, error) {
	var post models.Post
	if err := s.DB.First(&post, "id = ?", postID).Error; err != nil {
		return nil, notFoundOr(err, "post")
	}

	q := s.DB.Preload("Editor").Where("post_id = ?", postID).Order("created_at ASC")
	switch actor.Role {
	case models.RoleCustomer:
		if post.CustomerID != actor.ID {
			return nil, apperr.Authorization("")
		}
	case models.RoleEditor:
		q = q.Where("editor_id = ?", actor.ID)
	case models.RoleAdmin:
	default:
		return nil, apperr.Authorization("")
	}

	var bids []models.Bid
	if err := q.Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// ListEditorBids returns the acting editor's bids across posts.
func (s *Service) ListEditorBids(actor models.Principal) ([]models.Bid, error) {
	if err := s.requireRole(actor, models.RoleEditor); err != nil {
		return nil, err
	}

	var bids []models.Bid
	err := s.DB.
		Preload("Post").
		Preload("Post.Category").
		Where("editor_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}
