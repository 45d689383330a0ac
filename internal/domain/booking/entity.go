package booking

import (
	"time"

	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	return nil
}

func Cancel(b *models.Booking) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	return nil
}

// MarkPaid records a completed payment. The booking stays pending;
// confirmation is a separate coach action.
func MarkPaid(b *models.Booking, paymentIntentID string) error {
	if PaymentStatus(b.PaymentStatus) == PaymentPaid {
		return httperr.ErrBusiness("already_paid")
	}

	b.PaymentStatus = string(PaymentPaid)
	b.PaymentIntentID = paymentIntentID
	return nil
}

func MarkPaymentFailed(b *models.Booking) {
	b.PaymentStatus = string(PaymentFailed)
}

// RequestCancellation flags the booking for coach review. It does not
// change the booking status; an actual cancellation still requires
// coach action.
func RequestCancellation(b *models.Booking, now time.Time) error {
	if Status(b.Status) == StatusCancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	if b.CancellationRequest == CancellationRequested {
		return httperr.ErrBusiness("cancellation_already_requested")
	}

	start := SlotStart(b.Date, b.Time)
	if start.Sub(now) <= MinCancellationNoticeHours*time.Hour {
		return httperr.ErrBusiness("cancellation_window_passed")
	}

	b.CancellationRequest = CancellationRequested
	b.CancellationRequestedAt = &now
	return nil
}
