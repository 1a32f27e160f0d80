package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is the customer's one-time rating of a completed, paid project.
type Feedback struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_project_customer" json:"project_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_project_customer" json:"customer_id"`
	EditorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"editor_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Editor   *Editor   `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
