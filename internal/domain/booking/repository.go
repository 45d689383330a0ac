package booking

import (
	"context"
	"time"

	"github.com/tngolf/booking-api/internal/models"
)

type BookingFilter struct {
	UserID string
	Status string
}

// Repository is the reservation store. It is the only shared mutable
// resource; correctness under concurrent requests comes from its
// transactional guarantees, not in-process locks.
type Repository interface {
	// Transaction runs fn against a store view whose reads and writes
	// commit atomically. Conflict checks that gate slot-claiming
	// writes must run inside one.
	Transaction(ctx context.Context, fn func(Repository) error) error

	// -------- Booking --------
	ListBookings(
		ctx context.Context,
		filter BookingFilter,
	) ([]models.Booking, error)

	GetBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	FindBookingBySession(
		ctx context.Context,
		sessionID string,
	) (*models.Booking, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id string,
	) error

	// FindBookingConflict returns the booking occupying (date, time)
	// per the occupancy rule, or nil when the slot is free. excludeID
	// skips the caller's own row when re-validating.
	FindBookingConflict(
		ctx context.Context,
		date time.Time,
		timeLabel string,
		excludeID string,
	) (*models.Booking, error)

	// DeleteStalePendingBookings sweeps unpaid pending bookings
	// created before the cutoff and reports how many were removed.
	DeleteStalePendingBookings(
		ctx context.Context,
		olderThan time.Time,
	) (int64, error)

	// ListOccupiedBookings returns every booking currently holding
	// its slot (confirmed or paid).
	ListOccupiedBookings(
		ctx context.Context,
	) ([]models.Booking, error)

	// -------- BlockedSlot --------
	ListBlockedSlots(
		ctx context.Context,
	) ([]models.BlockedSlot, error)

	FindBlockedSlot(
		ctx context.Context,
		date time.Time,
		timeLabel string,
	) (*models.BlockedSlot, error)

	CreateBlockedSlot(
		ctx context.Context,
		s *models.BlockedSlot,
	) error

	DeleteBlockedSlot(
		ctx context.Context,
		id string,
	) error

	// -------- User --------
	GetUser(
		ctx context.Context,
		id string,
	) (*models.User, error)
}
