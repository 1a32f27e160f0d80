package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentTypeSource DocumentType = "SOURCE" // customer-supplied material
	DocumentTypeEdited DocumentType = "EDITED" // editor-supplied deliverable
)

// Document is metadata for an object already confirmed in S3. The row is
// only created after the upload reservation is consumed and the object
// HEAD-checked, so Key always points at a real object.
type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	UploaderID uuid.UUID `gorm:"type:uuid;not null;index" json:"uploader_id"`

	Type DocumentType `gorm:"type:varchar(10);not null" json:"type"`

	Key       string `gorm:"type:text;not null;uniqueIndex" json:"key"`
	Bucket    string `gorm:"type:varchar(120);not null" json:"bucket"`
	Region    string `gorm:"type:varchar(40);not null" json:"region"`
	Extension string `gorm:"type:varchar(20)" json:"extension"`

	Name        string `gorm:"type:varchar(200)" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Derived public URL, persisted for cheap listing.
	ImageURL string `gorm:"type:text" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
