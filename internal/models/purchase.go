package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase is an entitlement: the buyer may view the prompt's full content.
// The composite unique index guarantees at most one entitlement per
// (user, prompt) pair.
type Purchase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_prompt" json:"user_id"`
	PromptID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_prompt" json:"prompt_id"`
	CreatedAt time.Time `json:"purchased_at"`
}

func (p *Purchase) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
