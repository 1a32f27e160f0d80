package lifecycle

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
)

type CreatePostInput struct {
	CategoryID  uuid.UUID
	Title       string
	Description string
	Budget      int64
	Duration    int        // days
	Deadline    *time.Time // optional; derived from Duration when nil
}

// CreatePost publishes a new open post for the acting customer.
func (s *Service) CreatePost(actor models.Principal, in CreatePostInput) (*models.Post, error) {
	if err := s.requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}

	fields := apperr.FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		fields.Add("title", "Title is required")
	}
	if in.Budget <= 0 {
		fields.Add("budget", "Budget must be positive")
	}
	if in.Duration <= 0 {
		fields.Add("duration", "Duration must be a positive number of days")
	}
	if in.CategoryID == uuid.Nil {
		fields.Add("category_id", "Category is required")
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	var category models.Category
	if err := s.DB.First(&category, "id = ?", in.CategoryID).Error; err != nil {
		return nil, notFoundOr(err, "category")
	}

	deadline := time.Now().AddDate(0, 0, in.Duration)
	if in.Deadline != nil {
		deadline = *in.Deadline
	}

	post := models.Post{
		CustomerID:  actor.ID,
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Budget:      in.Budget,
		Duration:    in.Duration,
		Deadline:    deadline,
		Status:      models.PostStatusOpen,
	}

	if err := s.DB.Create(&post).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// GetPost loads a post with its category, customer and the bids the caller
// may see: all of them for the owner and admins, their own for an editor,
// none for anyone else. Same scoping as ListPostBids, so the detail view
// never leaks a rival editor's price.
func (s *Service) GetPost(actor models.Principal, postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.DB.
		Preload("Category").
		Preload("Customer").
		First(&post, "id = ?", postID).Error
	if err != nil {
		return nil, notFoundOr(err, "post")
	}

	q := s.DB.Preload("Editor").Where("post_id = ?", postID).Order("created_at ASC")
	switch {
	case actor.Role == models.RoleAdmin:
	case actor.Role == models.RoleCustomer && post.CustomerID == actor.ID:
	case actor.Role == models.RoleEditor:
		q = q.Where("editor_id = ?", actor.ID)
	default:
		return &post, nil
	}
	if err := q.Find(&post.Bids).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListOpenPosts is the editor-facing browse view, optionally filtered by category.
func (s *Service) ListOpenPosts(categoryID *uuid.UUID) ([]models.Post, error) {
	q := s.DB.
		Preload("Category").
		Preload("Customer").
		Where("status = ?", models.PostStatusOpen).
		Order("created_at DESC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListCustomerPosts returns the acting customer's own posts, newest first.
func (s *Service) ListCustomerPosts(actor models.Principal) ([]models.Post, error) {
	if err := s.requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}

	var posts []models.Post
	err := s.DB.
		Preload("Category").
		Preload("Bids").
		Preload("Bids.Editor").
		Where("customer_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ClosePost lets the owning customer withdraw a post that never left open.
func (s *Service) ClosePost(actor models.Principal, postID uuid.UUID) (*models.Post, error) {
	if err := s.requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}

	var post models.Post
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate()).First(&post, "id = ?", postID).Error; err != nil {
			return notFoundOr(err, "post")
		}
		if post.CustomerID != actor.ID {
			return apperr.Authorization("")
		}
		if post.Status != models.PostStatusOpen {
			return apperr.InvalidStatef("post is %s, only open posts can be closed", post.Status)
		}
		post.Status = models.PostStatusClosed
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
