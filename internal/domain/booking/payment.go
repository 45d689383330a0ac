package booking

import (
	"context"
	"time"

	"github.com/tngolf/booking-api/internal/models"
)

// PaymentBridge is the hosted-checkout payment processor. Marking a
// booking paid from its events is idempotent on the caller's side.

type CheckoutSession struct {
	ID  string
	URL string
}

type CheckoutStatus struct {
	Paid            bool
	PaymentIntentID string
}

type Receipt struct {
	ReceiptURL    string
	PaymentMethod string
	PaidAt        time.Time
}

type WebhookEventType string

const (
	EventCheckoutCompleted WebhookEventType = "checkout_completed"
	EventPaymentFailed     WebhookEventType = "payment_failed"
	EventIgnored           WebhookEventType = "ignored"
)

type WebhookEvent struct {
	Type            WebhookEventType
	SessionID       string
	PaymentIntentID string
}

type PaymentBridge interface {
	CreateCheckoutSession(
		ctx context.Context,
		b *models.Booking,
		u *models.User,
		successURL string,
		cancelURL string,
	) (*CheckoutSession, error)

	RetrieveCheckout(
		ctx context.Context,
		sessionID string,
	) (*CheckoutStatus, error)

	// RetrieveReceipt is best-effort; callers tolerate (nil, err).
	RetrieveReceipt(
		ctx context.Context,
		paymentIntentID string,
	) (*Receipt, error)

	// VerifyWebhook authenticates and parses an inbound notification.
	// A signature failure is an authorization failure.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
