package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"promptmarket-server/internal/config"
	"promptmarket-server/internal/dto"
	"promptmarket-server/internal/models"
)

var (
	ErrInvalidWebhook   = errors.New("webhook signature verification failed")
	ErrInvalidMetadata  = errors.New("checkout session metadata is missing or malformed")
	ErrCheckoutRequired = errors.New("prompt_title, price, user_id and prompt_id are required")
)

type PaymentService struct {
	db        *gorm.DB
	cfg       *config.Config
	purchases *PurchaseService
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, purchases *PurchaseService) *PaymentService {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentService{db: db, cfg: cfg, purchases: purchases}
}

// CreateCheckoutSession opens a Stripe Checkout for one premium prompt.
// The buyer and prompt ids ride along as session metadata so the webhook
// can grant the entitlement once payment completes.
func (s *PaymentService) CreateCheckoutSession(req *dto.CheckoutSessionRequest) (string, error) {
	if req.PromptTitle == "" || req.Price <= 0 || req.UserID == "" || req.PromptID == "" {
		return "", ErrCheckoutRequired
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card", "upi"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.cfg.StripeCurrency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.PromptTitle),
					},
					// Stripe wants minor units.
					UnitAmount: stripe.Int64(int64(req.Price * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.AddMetadata("user_id", req.UserID)
	params.AddMetadata("prompt_id", req.PromptID)

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}

	return sess.ID, nil
}

// HandleWebhook verifies and processes a Stripe event. Completed checkout
// sessions grant the entitlement the session metadata points at. Replayed
// deliveries are dropped via the PaymentEvent unique index.
func (s *PaymentService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return ErrInvalidWebhook
	}

	var seen models.PaymentEvent
	if err := s.db.Where("stripe_event_id = ?", event.ID).First(&seen).Error; err == nil {
		slog.Info("stripe event already processed", "event_id", event.ID)
		return nil
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		if err := s.handleCheckoutCompleted(&sess); err != nil {
			return err
		}
	default:
		// Unhandled event types are acknowledged and ignored.
	}

	record := models.PaymentEvent{
		ID:            uuid.New(),
		StripeEventID: event.ID,
		Type:          string(event.Type),
		Payload:       datatypes.JSON(event.Data.Raw),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record payment event: %w", err)
	}

	return nil
}

func (s *PaymentService) handleCheckoutCompleted(sess *stripe.CheckoutSession) error {
	buyerID, err := uuid.Parse(sess.Metadata["user_id"])
	if err != nil {
		return ErrInvalidMetadata
	}
	promptID, err := uuid.Parse(sess.Metadata["prompt_id"])
	if err != nil {
		return ErrInvalidMetadata
	}

	created, err := s.purchases.GrantForPrompt(buyerID, promptID)
	if err != nil {
		return fmt.Errorf("failed to grant entitlement: %w", err)
	}

	slog.Info("checkout reconciled", "user_id", buyerID, "prompt_id", promptID, "created", created)
	return nil
}
