package booking

import (
	"context"

	"github.com/tngolf/booking-api/internal/audit"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

// PaymentEvents applies payment outcomes to bookings: the webhook
// path and the polling fallback used when the webhook is delayed.
//
// Payment completion keeps the booking pending; the coach confirms
// manually and is notified of the new paid booking instead.
type PaymentEvents struct {
	repo    domain.Repository
	bridge  domain.PaymentBridge
	effects domain.EffectSink
	audit   *audit.Dispatcher
}

func NewPaymentEvents(
	repo domain.Repository,
	bridge domain.PaymentBridge,
	effects domain.EffectSink,
	auditor *audit.Dispatcher,
) *PaymentEvents {
	return &PaymentEvents{
		repo:    repo,
		bridge:  bridge,
		effects: effects,
		audit:   auditor,
	}
}

// ======================================================
// WEBHOOK
// ======================================================

// HandleWebhook verifies and applies an inbound processor event.
// Unknown event types are acknowledged and ignored.
func (uc *PaymentEvents) HandleWebhook(
	ctx context.Context,
	payload []byte,
	signature string,
) error {

	ev, err := uc.bridge.VerifyWebhook(payload, signature)
	if err != nil {
		return httperr.ErrBusiness("invalid_signature")
	}

	switch ev.Type {
	case domain.EventCheckoutCompleted:
		b, err := uc.repo.FindBookingBySession(ctx, ev.SessionID)
		if err != nil {
			return err
		}
		if b == nil {
			// Session not correlated to any booking; nothing to do.
			return nil
		}
		return uc.markPaid(ctx, b, ev.PaymentIntentID)

	case domain.EventPaymentFailed:
		b, err := uc.repo.FindBookingBySession(ctx, ev.SessionID)
		if err != nil || b == nil {
			return err
		}
		domain.MarkPaymentFailed(b)
		return uc.repo.UpdateBooking(ctx, b)

	default:
		return nil
	}
}

// ======================================================
// POLLING FALLBACK
// ======================================================

type CheckPaymentInput struct {
	UserID    string
	BookingID string
	SessionID string
}

type CheckPaymentResult struct {
	PaymentStatus string
	BookingStatus string
}

// CheckPayment asks the processor directly for the checkout outcome.
// The success-redirect page polls this when the webhook has not
// arrived yet.
func (uc *PaymentEvents) CheckPayment(
	ctx context.Context,
	in CheckPaymentInput,
) (*CheckPaymentResult, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != in.UserID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	status, err := uc.bridge.RetrieveCheckout(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if status.Paid && domain.PaymentStatus(b.PaymentStatus) != domain.PaymentPaid {
		if err := uc.markPaid(ctx, b, status.PaymentIntentID); err != nil {
			return nil, err
		}
	}

	return &CheckPaymentResult{
		PaymentStatus: b.PaymentStatus,
		BookingStatus: b.Status,
	}, nil
}

// ======================================================
// MARK PAID
// ======================================================

// markPaid is idempotent: a repeated completed event for an already
// paid booking is a no-op. Of several pending claims on one slot the
// first to get here wins; later ones fail the conflict re-check (and
// the partial unique index backs that up at commit).
func (uc *PaymentEvents) markPaid(
	ctx context.Context,
	b *models.Booking,
	paymentIntentID string,
) error {

	if domain.PaymentStatus(b.PaymentStatus) == domain.PaymentPaid {
		return nil
	}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		conflict, err := tx.FindBookingConflict(ctx, b.Date, b.Time, b.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrBusiness("slot_taken")
		}

		// The slot may have been blocked while this booking sat
		// pending-unpaid; a block and an occupying booking must
		// never coexist.
		block, err := tx.FindBlockedSlot(ctx, b.Date, b.Time)
		if err != nil {
			return err
		}
		if block != nil {
			return httperr.ErrBusiness("slot_blocked")
		}

		if err := domain.MarkPaid(b, paymentIntentID); err != nil {
			return err
		}
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &b.UserID,
		Action:   "booking_paid",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	user, err := uc.repo.GetUser(ctx, b.UserID)
	if err != nil {
		// The transition already committed; notification is lost,
		// not rolled back.
		return nil
	}

	uc.effects.Dispatch(domain.Effect{
		Kind:       domain.EffectPaidBookingPending,
		Booking:    *b,
		User:       *user,
		ReceiptURL: uc.receiptURL(ctx, b),
	})

	return nil
}

// receiptURL is best-effort enrichment; failures are ignored.
func (uc *PaymentEvents) receiptURL(ctx context.Context, b *models.Booking) string {
	if b.PaymentIntentID == "" {
		return ""
	}
	receipt, err := uc.bridge.RetrieveReceipt(ctx, b.PaymentIntentID)
	if err != nil || receipt == nil {
		return ""
	}
	return receipt.ReceiptURL
}
