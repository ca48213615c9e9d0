package dto

import (
	"time"

	"github.com/google/uuid"

	"promptmarket-server/internal/models"
)

type CreatePromptRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	IsPremium bool   `json:"isPremium"`
	Price     int64  `json:"price"`
}

// UpdatePromptRequest is a partial patch; nil fields are left untouched.
type UpdatePromptRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Category  *string `json:"category"`
	IsPremium *bool   `json:"isPremium"`
	Price     *int64  `json:"price"`
}

// PromptResponse is a prompt shaped for a specific viewer. Content is null
// when the viewer is not entitled to the premium body. Message carries the
// purchase advisory on single-prompt reads only.
type PromptResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Category  string    `json:"category"`
	IsPremium bool      `json:"is_premium"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"msg,omitempty"`
}

// NewPromptResponse shapes a prompt, redacting content unless revealed.
func NewPromptResponse(p *models.Prompt, revealed bool) PromptResponse {
	resp := PromptResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Username:  p.User.Username,
		Title:     p.Title,
		Category:  p.Category,
		IsPremium: p.IsPremium,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
	if revealed {
		content := p.Content
		resp.Content = &content
	}
	return resp
}

type BuyResponse struct {
	Message   string `json:"msg"`
	Purchased bool   `json:"purchased"`
}

type PurchaseStatusResponse struct {
	Purchased bool `json:"purchased"`
}
