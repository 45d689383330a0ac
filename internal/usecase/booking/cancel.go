package booking

import (
	"context"

	"github.com/tngolf/booking-api/internal/audit"
	"github.com/tngolf/booking-api/internal/authz"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

// CancelBooking is the coach cancelling any non-cancelled booking,
// either directly or approving a customer's cancellation request.
type CancelBooking struct {
	repo    domain.Repository
	policy  authz.Policy
	effects domain.EffectSink
	audit   *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	policy authz.Policy,
	effects domain.EffectSink,
	auditor *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		policy:  policy,
		effects: effects,
		audit:   auditor,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actorEmail string,
	bookingID string,
) (*models.Booking, error) {

	if !uc.policy.IsCoach(actorEmail) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(b); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	if user, err := uc.repo.GetUser(ctx, b.UserID); err == nil {
		uc.effects.Dispatch(domain.Effect{
			Kind:    domain.EffectBookingCancelled,
			Booking: *b,
			User:    *user,
		})
	}

	return b, nil
}
