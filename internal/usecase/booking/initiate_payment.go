package booking

import (
	"context"
	"fmt"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
)

type InitiatePaymentInput struct {
	UserID    string
	BookingID string
}

type InitiatePaymentResult struct {
	SessionID   string
	RedirectURL string
}

// InitiatePayment requests a hosted-checkout session for an unpaid
// booking and records the session on the booking row.
type InitiatePayment struct {
	repo   domain.Repository
	bridge domain.PaymentBridge
	appURL string
}

func NewInitiatePayment(
	repo domain.Repository,
	bridge domain.PaymentBridge,
	appURL string,
) *InitiatePayment {
	return &InitiatePayment{
		repo:   repo,
		bridge: bridge,
		appURL: appURL,
	}
}

func (uc *InitiatePayment) Execute(
	ctx context.Context,
	in InitiatePaymentInput,
) (*InitiatePaymentResult, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != in.UserID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if domain.PaymentStatus(b.PaymentStatus) == domain.PaymentPaid {
		return nil, httperr.ErrBusiness("already_paid")
	}

	svc, ok := domain.Services[b.ServiceType]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	user, err := uc.repo.GetUser(ctx, b.UserID)
	if err != nil {
		return nil, err
	}

	successURL := fmt.Sprintf("%s/boka?booking=%s&payment=success", uc.appURL, b.ID)
	cancelURL := fmt.Sprintf("%s/boka?booking=%s&payment=cancelled", uc.appURL, b.ID)

	sess, err := uc.bridge.CreateCheckoutSession(ctx, b, user, successURL, cancelURL)
	if err != nil {
		// The flow cannot proceed without the processor; surfaced,
		// unlike notification failures.
		return nil, err
	}

	b.CheckoutSessionID = sess.ID
	b.PaymentStatus = string(domain.PaymentPending)
	b.Amount = svc.Price
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	return &InitiatePaymentResult{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}
