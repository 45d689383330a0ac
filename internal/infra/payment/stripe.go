package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/models"
	"github.com/tngolf/booking-api/internal/timezone"
)

// StripeBridge implements the payment bridge against Stripe hosted
// checkout. Amounts are SEK; Stripe wants öre.
type StripeBridge struct {
	webhookSecret string
}

func NewStripeBridge(secretKey, webhookSecret string) *StripeBridge {
	stripe.Key = secretKey
	return &StripeBridge{webhookSecret: webhookSecret}
}

func (s *StripeBridge) CreateCheckoutSession(
	ctx context.Context,
	b *models.Booking,
	u *models.User,
	successURL string,
	cancelURL string,
) (*domain.CheckoutSession, error) {

	svc, ok := domain.Services[b.ServiceType]
	if !ok {
		return nil, fmt.Errorf("unknown service type %q", b.ServiceType)
	}

	dateStr := b.Date.In(timezone.Location()).Format("2006-01-02")

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
		CustomerEmail:      stripe.String(u.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("sek"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(svc.Name),
						Description: stripe.String(fmt.Sprintf("%s - %s %s", svc.Name, dateStr, b.Time)),
					},
					UnitAmount: stripe.Int64(svc.Price * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", b.ID)
	params.AddMetadata("user_id", b.UserID)
	params.AddMetadata("service_type", b.ServiceType)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &domain.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

func (s *StripeBridge) RetrieveCheckout(
	ctx context.Context,
	sessionID string,
) (*domain.CheckoutStatus, error) {

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	out := &domain.CheckoutStatus{
		Paid: sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}

	return out, nil
}

func (s *StripeBridge) RetrieveReceipt(
	ctx context.Context,
	paymentIntentID string,
) (*domain.Receipt, error) {

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	pi, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}

	charge := pi.LatestCharge
	if charge == nil {
		return nil, nil
	}

	label := "Kort"
	if charge.PaymentMethodDetails != nil && charge.PaymentMethodDetails.Card != nil {
		card := charge.PaymentMethodDetails.Card
		label = fmt.Sprintf("%s •••• %s", card.Brand, card.Last4)
	}

	return &domain.Receipt{
		ReceiptURL:    charge.ReceiptURL,
		PaymentMethod: label,
		PaidAt:        time.Unix(charge.Created, 0).In(timezone.Location()),
	}, nil
}

func (s *StripeBridge) VerifyWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_failed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("parse checkout session payload: %w", err)
		}

		ev := &domain.WebhookEvent{SessionID: sess.ID}
		if sess.PaymentIntent != nil {
			ev.PaymentIntentID = sess.PaymentIntent.ID
		}

		if event.Type == "checkout.session.completed" {
			ev.Type = domain.EventCheckoutCompleted
		} else {
			ev.Type = domain.EventPaymentFailed
		}
		return ev, nil

	default:
		return &domain.WebhookEvent{Type: domain.EventIgnored}, nil
	}
}

// Compile-time check
var _ domain.PaymentBridge = (*StripeBridge)(nil)
