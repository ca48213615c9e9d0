package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"promptmarket-server/internal/dto"
	"promptmarket-server/internal/identity"
	"promptmarket-server/internal/services"
)

type AIHandler struct {
	authService *services.AuthService
	prompts     *services.PromptService
}

func NewAIHandler(authService *services.AuthService, prompts *services.PromptService) *AIHandler {
	return &AIHandler{authService: authService, prompts: prompts}
}

// Preview is the plan-gated AI preview. Premium prompts require a pro or
// enterprise plan; the plan is re-read from the store, never from token
// claims. Generation itself is not implemented yet.
func (h *AIHandler) Preview(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.AIPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	promptID, err := uuid.Parse(req.PromptID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "prompt_id is required",
		})
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	prompt, err := h.prompts.Get(promptID)
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	if prompt.IsPremium && !user.Plan.AllowsPremiumPreview() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Upgrade to Pro to use AI Preview on premium prompts.",
		})
	}

	return c.JSON(dto.AIPreviewResponse{Message: "AI preview would be generated here."})
}
