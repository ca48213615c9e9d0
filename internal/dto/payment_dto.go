package dto

// CheckoutSessionRequest mirrors what the storefront sends when starting a
// Stripe Checkout for a premium prompt. Price is in whole currency units.
type CheckoutSessionRequest struct {
	PromptTitle string  `json:"prompt_title"`
	Price       float64 `json:"price"`
	UserID      string  `json:"user_id"`
	PromptID    string  `json:"prompt_id"`
	SuccessURL  string  `json:"success_url"`
	CancelURL   string  `json:"cancel_url"`
}

type CheckoutSessionResponse struct {
	ID string `json:"id"`
}

type AIPreviewRequest struct {
	PromptID string `json:"prompt_id"`
}

type AIPreviewResponse struct {
	Message string `json:"msg"`
}
