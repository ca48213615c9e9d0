package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEvent records every processed Stripe webhook event. The unique
// index on StripeEventID makes webhook delivery retries idempotent.
type PaymentEvent struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StripeEventID string         `gorm:"size:255;not null;uniqueIndex" json:"stripe_event_id"`
	Type          string         `gorm:"size:100;not null" json:"type"`
	Payload       datatypes.JSON `json:"payload"`
	CreatedAt     time.Time      `json:"processed_at"`
}

func (e *PaymentEvent) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
