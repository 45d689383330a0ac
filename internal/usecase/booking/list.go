package booking

import (
	"context"

	"github.com/tngolf/booking-api/internal/authz"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

// ListUserBookings returns the caller's own bookings.
type ListUserBookings struct {
	repo domain.Repository
}

func NewListUserBookings(repo domain.Repository) *ListUserBookings {
	return &ListUserBookings{repo: repo}
}

func (uc *ListUserBookings) Execute(
	ctx context.Context,
	userID string,
) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, domain.BookingFilter{UserID: userID})
}

// ListAllBookings is the coach view, optionally filtered by status.
type ListAllBookings struct {
	repo   domain.Repository
	policy authz.Policy
}

func NewListAllBookings(repo domain.Repository, policy authz.Policy) *ListAllBookings {
	return &ListAllBookings{repo: repo, policy: policy}
}

func (uc *ListAllBookings) Execute(
	ctx context.Context,
	actorEmail string,
	status string,
) ([]models.Booking, error) {

	if !uc.policy.IsCoach(actorEmail) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return uc.repo.ListBookings(ctx, domain.BookingFilter{Status: status})
}

// ListBlockedSlots is the coach's view of all blocks.
type ListBlockedSlots struct {
	repo   domain.Repository
	policy authz.Policy
}

func NewListBlockedSlots(repo domain.Repository, policy authz.Policy) *ListBlockedSlots {
	return &ListBlockedSlots{repo: repo, policy: policy}
}

func (uc *ListBlockedSlots) Execute(
	ctx context.Context,
	actorEmail string,
) ([]models.BlockedSlot, error) {

	if !uc.policy.IsCoach(actorEmail) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	return uc.repo.ListBlockedSlots(ctx)
}
