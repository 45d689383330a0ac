package booking

import (
	"context"

	"github.com/tngolf/booking-api/internal/audit"
	"github.com/tngolf/booking-api/internal/authz"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

// ConfirmBooking is the coach promoting a pending booking. Allowed
// regardless of payment status so offline/unpaid bookings can be
// confirmed manually.
type ConfirmBooking struct {
	repo    domain.Repository
	policy  authz.Policy
	bridge  domain.PaymentBridge
	effects domain.EffectSink
	audit   *audit.Dispatcher
}

func NewConfirmBooking(
	repo domain.Repository,
	policy authz.Policy,
	bridge domain.PaymentBridge,
	effects domain.EffectSink,
	auditor *audit.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:    repo,
		policy:  policy,
		bridge:  bridge,
		effects: effects,
		audit:   auditor,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	actorEmail string,
	bookingID string,
) (*models.Booking, error) {

	if !uc.policy.IsCoach(actorEmail) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	var b *models.Booking

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		b, err = tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		conflict, err := tx.FindBookingConflict(ctx, b.Date, b.Time, b.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrBusiness("slot_taken")
		}

		block, err := tx.FindBlockedSlot(ctx, b.Date, b.Time)
		if err != nil {
			return err
		}
		if block != nil {
			return httperr.ErrBusiness("slot_blocked")
		}

		if err := domain.Confirm(b); err != nil {
			return err
		}
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	// Paid bookings get a customer confirmation, enriched with the
	// payment receipt when the processor can produce one.
	if domain.PaymentStatus(b.PaymentStatus) == domain.PaymentPaid {
		if user, err := uc.repo.GetUser(ctx, b.UserID); err == nil {
			var receiptURL string
			if b.PaymentIntentID != "" {
				if receipt, err := uc.bridge.RetrieveReceipt(ctx, b.PaymentIntentID); err == nil && receipt != nil {
					receiptURL = receipt.ReceiptURL
				}
			}
			uc.effects.Dispatch(domain.Effect{
				Kind:       domain.EffectBookingConfirmed,
				Booking:    *b,
				User:       *user,
				ReceiptURL: receiptURL,
			})
		}
	}

	return b, nil
}
