package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"promptmarket-server/internal/dto"
	"promptmarket-server/internal/models"
)

// FreePlanPromptLimit caps how many prompts a free-plan user may own.
const FreePlanPromptLimit = 4

var (
	ErrTitleContentRequired = errors.New("title and content are required")
	ErrPromptNotFound       = errors.New("prompt not found")
	ErrNotOwner             = errors.New("you do not own this prompt")
	ErrQuotaExceeded        = errors.New("free users can only create up to 4 prompts, upgrade to create more")
)

type PromptService struct {
	db *gorm.DB
}

func NewPromptService(db *gorm.DB) *PromptService {
	return &PromptService{db: db}
}

// Create persists a new prompt after enforcing the free-plan quota. The
// owner row is locked for the duration of the transaction so concurrent
// creates from the same user cannot slip past the quota count.
func (s *PromptService) Create(ownerID uuid.UUID, req *dto.CreatePromptRequest) (*models.Prompt, error) {
	if req.Title == "" || req.Content == "" {
		return nil, ErrTitleContentRequired
	}

	prompt := &models.Prompt{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		IsPremium: req.IsPremium,
		Price:     req.Price,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ownerQuery := tx
		if tx.Dialector.Name() == "postgres" {
			// SQLite (tests) has a single writer per database, the
			// explicit row lock is only needed on Postgres.
			ownerQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var owner models.User
		if err := ownerQuery.First(&owner, "id = ?", ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load owner: %w", err)
		}

		if owner.Plan == models.PlanFree {
			var count int64
			if err := tx.Model(&models.Prompt{}).Where("user_id = ?", ownerID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count prompts: %w", err)
			}
			if count >= FreePlanPromptLimit {
				return ErrQuotaExceeded
			}
		}

		return tx.Create(prompt).Error
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// List returns all prompts newest first, owners preloaded.
func (s *PromptService) List() ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := s.db.Preload("User").Order("created_at DESC").Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

func (s *PromptService) Get(id uuid.UUID) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.db.Preload("User").First(&prompt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to load prompt: %w", err)
	}
	return &prompt, nil
}

// Update applies a partial patch. Only the owner may update.
func (s *PromptService) Update(id, requesterID uuid.UUID, req *dto.UpdatePromptRequest) (*models.Prompt, error) {
	var prompt models.Prompt

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prompt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return fmt.Errorf("failed to load prompt: %w", err)
		}

		if prompt.UserID != requesterID {
			return ErrNotOwner
		}

		if req.Title != nil {
			prompt.Title = *req.Title
		}
		if req.Content != nil {
			prompt.Content = *req.Content
		}
		if req.Category != nil {
			prompt.Category = *req.Category
		}
		if req.IsPremium != nil {
			prompt.IsPremium = *req.IsPremium
		}
		if req.Price != nil {
			prompt.Price = *req.Price
		}

		return tx.Save(&prompt).Error
	})
	if err != nil {
		return nil, err
	}

	return &prompt, nil
}

// Delete removes a prompt and cascades to its purchases and sales so no
// entitlement can dangle on a prompt that no longer exists.
func (s *PromptService) Delete(id, requesterID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		if err := tx.First(&prompt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromptNotFound
			}
			return fmt.Errorf("failed to load prompt: %w", err)
		}

		if prompt.UserID != requesterID {
			return ErrNotOwner
		}

		if err := tx.Where("prompt_id = ?", id).Delete(&models.Purchase{}).Error; err != nil {
			return fmt.Errorf("failed to delete purchases: %w", err)
		}
		if err := tx.Where("prompt_id = ?", id).Delete(&models.Sale{}).Error; err != nil {
			return fmt.Errorf("failed to delete sales: %w", err)
		}
		return tx.Delete(&prompt).Error
	})
}
