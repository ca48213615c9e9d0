package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is the revenue record written whenever an entitlement is granted.
// Purchase answers "may this user view", Sale answers "who earned what".
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PromptID  uuid.UUID `gorm:"type:uuid;not null;index" json:"prompt_id"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Price     float64   `gorm:"type:decimal(10,2)" json:"price"`
	CreatedAt time.Time `json:"sold_at"`
}

func (s *Sale) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
