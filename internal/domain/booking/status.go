package booking

import "github.com/tngolf/booking-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentNone    PaymentStatus = ""
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

const CancellationRequested = "pending"

// PaymentMethodOnline is the hosted-checkout path. Any other method
// (e.g. "onsite") creates the booking without a payment step.
const PaymentMethodOnline = "online"

// MinCancellationNotice is how far ahead of the session a customer
// may still request cancellation.
const MinCancellationNoticeHours = 48

// AbandonmentWindow: unpaid pending bookings older than this are
// garbage-collected and their slot freed.
const AbandonmentWindowMinutes = 30

// ===============================
// Validations
// ===============================

// Occupies is the occupancy rule: a booking holds its slot only once
// it is confirmed or paid. A merely pending, unpaid booking does not
// block the slot; several such attempts may coexist and the first to
// reach paid/confirmed wins.
func Occupies(status Status, payment PaymentStatus) bool {
	return status == StatusConfirmed || payment == PaymentPaid
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanDelete permits hard deletion only for bookings already cancelled.
func CanDelete(current Status) error {
	if current != StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
