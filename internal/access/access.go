// Package access decides whether a viewer may see a prompt's full content.
package access

import (
	"github.com/google/uuid"

	"promptmarket-server/internal/models"
)

// EntitlementChecker reports whether a user holds an entitlement for a
// prompt. Implemented by the purchase service; tests supply their own.
type EntitlementChecker interface {
	HasEntitlement(userID, promptID uuid.UUID) bool
}

// Reveal reports whether the viewer may see the prompt's content.
// Non-premium prompts are visible to everyone. Premium content is visible
// to the owner and to holders of an entitlement; anonymous viewers
// (viewer == nil) never see premium content.
func Reveal(p *models.Prompt, viewer *uuid.UUID, entitlements EntitlementChecker) bool {
	if !p.IsPremium {
		return true
	}
	if viewer == nil {
		return false
	}
	if *viewer == p.UserID {
		return true
	}
	return entitlements.HasEntitlement(*viewer, p.ID)
}
