package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid is an editor's offer on an open post. Approved and Declined are
// mutually exclusive; at most one bid per post is ever approved, and an
// editor may hold at most one bid per post.
type Bid struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bids_post_editor" json:"post_id"`
	EditorID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bids_post_editor" json:"editor_id"`

	Price   int64  `gorm:"not null" json:"price"`
	Comment string `gorm:"type:text" json:"comment"`

	Approved bool `gorm:"default:false" json:"approved"`
	Declined bool `gorm:"default:false" json:"declined"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Post   *Post   `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Editor *Editor `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
