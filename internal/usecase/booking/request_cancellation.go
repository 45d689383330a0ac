package booking

import (
	"context"
	"time"

	"github.com/tngolf/booking-api/internal/audit"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
	"github.com/tngolf/booking-api/internal/timezone"
)

// RequestCancellation lets the booking's owner ask the coach to
// cancel, as long as more than 48 hours remain before the session.
type RequestCancellation struct {
	repo    domain.Repository
	effects domain.EffectSink
	audit   *audit.Dispatcher
	now     func() time.Time
}

func NewRequestCancellation(
	repo domain.Repository,
	effects domain.EffectSink,
	auditor *audit.Dispatcher,
) *RequestCancellation {
	return &RequestCancellation{
		repo:    repo,
		effects: effects,
		audit:   auditor,
		now:     timezone.Now,
	}
}

func (uc *RequestCancellation) Execute(
	ctx context.Context,
	userID string,
	bookingID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, httperr.ErrBusiness("not_owner")
	}

	if err := domain.RequestCancellation(b, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cancellation_requested",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	if user, err := uc.repo.GetUser(ctx, b.UserID); err == nil {
		uc.effects.Dispatch(domain.Effect{
			Kind:    domain.EffectCancellationRequested,
			Booking: *b,
			User:    *user,
		})
	}

	return b, nil
}
