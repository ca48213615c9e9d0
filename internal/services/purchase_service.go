package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"promptmarket-server/internal/models"
)

var ErrPromptNotPremium = errors.New("this prompt is free")

// PurchaseService is the entitlement ledger. It also implements
// access.EntitlementChecker.
type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// Buy grants the buyer an entitlement for a premium prompt. The returned
// bool is false when the buyer already held the entitlement; re-clicks
// succeed without inserting a duplicate row.
func (s *PurchaseService) Buy(buyerID, promptID uuid.UUID) (bool, error) {
	var prompt models.Prompt
	if err := s.db.First(&prompt, "id = ?", promptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPromptNotFound
		}
		return false, fmt.Errorf("failed to load prompt: %w", err)
	}

	if !prompt.IsPremium {
		return false, ErrPromptNotPremium
	}

	return s.grant(buyerID, &prompt)
}

// HasEntitlement is a pure lookup used by the access evaluator and the
// purchase-status endpoint.
func (s *PurchaseService) HasEntitlement(userID, promptID uuid.UUID) bool {
	var purchase models.Purchase
	err := s.db.Where("user_id = ? AND prompt_id = ?", userID, promptID).
		First(&purchase).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("entitlement lookup failed", "user_id", userID, "prompt_id", promptID, "error", err)
		}
		return false
	}
	return true
}

// GrantForPrompt creates the entitlement for an already-verified payment
// (webhook reconciliation path). Idempotent like Buy.
func (s *PurchaseService) GrantForPrompt(buyerID, promptID uuid.UUID) (bool, error) {
	var prompt models.Prompt
	if err := s.db.First(&prompt, "id = ?", promptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPromptNotFound
		}
		return false, fmt.Errorf("failed to load prompt: %w", err)
	}
	return s.grant(buyerID, &prompt)
}

// grant inserts the purchase and its sale record in one transaction. The
// unique (user_id, prompt_id) index backstops concurrent double-buys; a
// duplicate-key failure is reported as "already owned".
func (s *PurchaseService) grant(buyerID uuid.UUID, prompt *models.Prompt) (bool, error) {
	if s.HasEntitlement(buyerID, prompt.ID) {
		return false, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		purchase := models.Purchase{
			ID:       uuid.New(),
			UserID:   buyerID,
			PromptID: prompt.ID,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		sale := models.Sale{
			ID:       uuid.New(),
			PromptID: prompt.ID,
			SellerID: prompt.UserID,
			BuyerID:  buyerID,
			Price:    float64(prompt.Price),
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to record purchase: %w", err)
	}

	return true, nil
}
