package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// Payment is the single, immutable payment captured for a project. The
// unique index on ProjectID is what makes double capture impossible even
// under concurrent requests.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	EditorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"editor_id"`

	Amount int64         `gorm:"not null" json:"amount"`
	Method PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`

	// Masked instrument details for receipts (brand, last4, expiry). Never
	// the full number or CVV.
	CardSnapshot datatypes.JSON `json:"card_snapshot,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
