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

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	UserID        string
	ServiceType   string
	Date          string // YYYY-MM-DD
	Time          string // HH:mm slot label
	Notes         string
	PaymentMethod string
}

type CreateBookingResult struct {
	Booking         *models.Booking
	RequiresPayment bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: auditor,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	svc, ok := domain.Services[in.ServiceType]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	if !domain.IsValidTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	date = domain.NormalizeDate(date)

	if date.Weekday() == domain.ExcludedWeekday {
		return nil, httperr.ErrBusiness("sunday_not_bookable")
	}

	now := uc.now()
	if date.Before(domain.NormalizeDate(now)) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	requiresPayment := in.PaymentMethod == domain.PaymentMethodOnline

	b := &models.Booking{
		UserID:        in.UserID,
		ServiceType:   in.ServiceType,
		Date:          date,
		Time:          in.Time,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
		PaymentMethod: in.PaymentMethod,
	}
	if requiresPayment {
		b.PaymentStatus = string(domain.PaymentPending)
		b.Amount = svc.Price
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// Abandoned payment attempts free their slot here; there is
		// no background job this sweep depends on.
		cutoff := now.Add(-domain.AbandonmentWindowMinutes * time.Minute)
		if _, err := tx.DeleteStalePendingBookings(ctx, cutoff); err != nil {
			return err
		}

		conflict, err := tx.FindBookingConflict(ctx, date, in.Time, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrBusiness("slot_taken")
		}

		block, err := tx.FindBlockedSlot(ctx, date, in.Time)
		if err != nil {
			return err
		}
		if block != nil {
			return httperr.ErrBusiness("slot_blocked")
		}

		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"service_type": in.ServiceType,
			"date":         in.Date,
			"time":         in.Time,
		},
	})

	return &CreateBookingResult{
		Booking:         b,
		RequiresPayment: requiresPayment,
	}, nil
}
