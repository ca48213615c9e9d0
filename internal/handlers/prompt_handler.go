package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"promptmarket-server/internal/access"
	"promptmarket-server/internal/dto"
	"promptmarket-server/internal/identity"
	"promptmarket-server/internal/services"
)

const purchaseAdvisory = "You must purchase this premium prompt to view the content."

type PromptHandler struct {
	prompts   *services.PromptService
	purchases *services.PurchaseService
}

func NewPromptHandler(prompts *services.PromptService, purchases *services.PurchaseService) *PromptHandler {
	return &PromptHandler{prompts: prompts, purchases: purchases}
}

func (h *PromptHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	prompt, err := h.prompts.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleContentRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrQuotaExceeded):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Prompt created!",
		"prompt_id": prompt.ID,
	})
}

// List returns every prompt, each shaped through the access evaluator for
// the current viewer. No purchase advisory on the list form.
func (h *PromptHandler) List(c *fiber.Ctx) error {
	viewer := identity.Viewer(c)

	prompts, err := h.prompts.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	result := make([]dto.PromptResponse, 0, len(prompts))
	for i := range prompts {
		revealed := access.Reveal(&prompts[i], viewer, h.purchases)
		result = append(result, dto.NewPromptResponse(&prompts[i], revealed))
	}

	return c.JSON(result)
}

func (h *PromptHandler) Get(c *fiber.Ctx) error {
	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrPromptNotFound.Error(),
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

	viewer := identity.Viewer(c)
	revealed := access.Reveal(prompt, viewer, h.purchases)
	resp := dto.NewPromptResponse(prompt, revealed)
	if !revealed {
		resp.Message = purchaseAdvisory
	}

	return c.JSON(resp)
}

func (h *PromptHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrPromptNotFound.Error(),
		})
	}

	var req dto.UpdatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if _, err := h.prompts.Update(promptID, userID, &req); err != nil {
		return promptMutationError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Prompt updated successfully."})
}

func (h *PromptHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrPromptNotFound.Error(),
		})
	}

	if err := h.prompts.Delete(promptID, userID); err != nil {
		return promptMutationError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Prompt deleted successfully."})
}

// Buy creates the entitlement. 201 on a fresh purchase, 200 when the buyer
// already owned it.
func (h *PromptHandler) Buy(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrPromptNotFound.Error(),
		})
	}

	created, err := h.purchases.Buy(userID, promptID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromptNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrPromptNotPremium):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	if !created {
		return c.JSON(dto.BuyResponse{Message: "Already purchased.", Purchased: true})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BuyResponse{
		Message: "Prompt purchased successfully.", Purchased: true,
	})
}

func (h *PromptHandler) CheckPurchase(c *fiber.Ctx) error {
	userID, err := identity.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	promptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrPromptNotFound.Error(),
		})
	}

	return c.JSON(dto.PurchaseStatusResponse{
		Purchased: h.purchases.HasEntitlement(userID, promptID),
	})
}

func promptMutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPromptNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
