package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"promptmarket-server/internal/dto"
	"promptmarket-server/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateCheckoutSession starts the Stripe checkout flow. Provider failures
// come back as 400 with the provider's message.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req dto.CheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	sessionID, err := h.payments.CreateCheckoutSession(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.CheckoutSessionResponse{ID: sessionID})
}

// StripeWebhook receives payment confirmations and grants the matching
// entitlement.
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	sigHeader := c.Get("Stripe-Signature")

	if err := h.payments.HandleWebhook(c.Body(), sigHeader); err != nil {
		if errors.Is(err, services.ErrInvalidWebhook) || errors.Is(err, services.ErrInvalidMetadata) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("stripe webhook processing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
