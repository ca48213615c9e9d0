package routes

import (
	"github.com/gofiber/fiber/v2"

	"promptmarket-server/internal/config"
	"promptmarket-server/internal/handlers"
	"promptmarket-server/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	promptHandler *handlers.PromptHandler,
	paymentHandler *handlers.PaymentHandler,
	aiHandler *handlers.AIHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Auth — public
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	app.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Prompt reads are public with optional elevation; a bad token reads
	// as anonymous instead of failing.
	app.Get("/prompts", middleware.OptionalAuth(cfg), promptHandler.List)
	app.Get("/prompts/:id", middleware.OptionalAuth(cfg), promptHandler.Get)

	// Prompt mutations and purchases require auth.
	app.Post("/prompts", middleware.JWTProtected(cfg), promptHandler.Create)
	app.Put("/prompts/:id", middleware.JWTProtected(cfg), promptHandler.Update)
	app.Delete("/prompts/:id", middleware.JWTProtected(cfg), promptHandler.Delete)
	app.Post("/prompts/:id/buy", middleware.JWTProtected(cfg), promptHandler.Buy)
	app.Get("/prompts/:id/buy", middleware.JWTProtected(cfg), promptHandler.CheckPurchase)

	app.Post("/ai-preview", middleware.JWTProtected(cfg), aiHandler.Preview)

	// Payments — checkout is public, the webhook authenticates itself via
	// the Stripe signature.
	app.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	app.Post("/webhooks/stripe", paymentHandler.StripeWebhook)
}
