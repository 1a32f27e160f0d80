package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusInProgress     ProjectStatus = "in_progress"
	ProjectStatusPaymentPending ProjectStatus = "payment_pending"
	ProjectStatusCompleted      ProjectStatus = "completed"
)

// Project is the join of an approved bid with its post. Exactly one project
// may exist per post; it is created in the same transaction that approves
// the bid.
type Project struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"post_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	EditorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"editor_id"`

	Status ProjectStatus `gorm:"type:varchar(20);default:'in_progress';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Post      *Post      `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Customer  *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Editor    *Editor    `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
	Payment   *Payment   `gorm:"foreignKey:ProjectID" json:"payment,omitempty"`
	Documents []Document `gorm:"foreignKey:ProjectID" json:"documents,omitempty"`
	Feedback  *Feedback  `gorm:"foreignKey:ProjectID" json:"feedback,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
