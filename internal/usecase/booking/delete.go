package booking

import (
	"context"

	"github.com/tngolf/booking-api/internal/audit"
	"github.com/tngolf/booking-api/internal/authz"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
)

// DeleteBooking hard-deletes a booking. The raw store delete has no
// guard; the cancelled-only rule is enforced here.
type DeleteBooking struct {
	repo   domain.Repository
	policy authz.Policy
	audit  *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	policy authz.Policy,
	auditor *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:   repo,
		policy: policy,
		audit:  auditor,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actorEmail string,
	bookingID string,
) error {

	if !uc.policy.IsCoach(actorEmail) {
		return httperr.ErrBusiness("forbidden")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(domain.Status(b.Status)); err != nil {
		return err
	}

	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
