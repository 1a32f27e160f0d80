package lifecycle

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
)

type CreateCategoryInput struct {
	Name        string
	Description string
}

// CreateCategory is admin-only; categories are never deleted in normal flow.
func (s *Service) CreateCategory(actor models.Principal, in CreateCategoryInput) (*models.Category, error) {
	if err := s.requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.ValidationMsg("name", "Name is required")
	}

	var existing models.Category
	err := s.DB.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("category already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{
		Name:        name,
		Description: in.Description,
	}
	if err := s.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
