package booking

import "github.com/tngolf/booking-api/internal/models"

// Lifecycle transitions emit effects instead of sending notifications
// inline. A dispatcher performs them asynchronously; their failure
// never reverses a committed transition.

type EffectKind string

const (
	// Customer-facing.
	EffectBookingConfirmed EffectKind = "booking_confirmed"
	EffectBookingCancelled EffectKind = "booking_cancelled"

	// Coach-facing.
	EffectCancellationRequested EffectKind = "cancellation_requested"
	EffectPaidBookingPending    EffectKind = "paid_booking_pending"
)

type Effect struct {
	Kind       EffectKind
	Booking    models.Booking
	User       models.User
	ReceiptURL string
}

type EffectSink interface {
	Dispatch(Effect)
}
