package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// Transaction hands the callback a repository bound to the tx, so
// conflict checks and the writes they gate commit atomically.
func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	filter domain.BookingFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Preload("User")

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var bookings []models.Booking
	if err := q.Order("date ASC, \"time\" ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) FindBookingBySession(
	ctx context.Context,
	sessionID string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("checkout_session_id = ?", sessionID).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id string,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("booking_not_found")
	}
	return nil
}

// FindBookingConflict applies the occupancy rule: only confirmed or
// paid bookings hold a slot. Locked FOR UPDATE so a concurrent claim
// inside another transaction waits for ours.
func (r *BookingGormRepository) FindBookingConflict(
	ctx context.Context,
	date time.Time,
	timeLabel string,
	excludeID string,
) (*models.Booking, error) {

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"date = ? AND \"time\" = ? AND (status = ? OR payment_status = ?)",
			date, timeLabel,
			string(domain.StatusConfirmed), string(domain.PaymentPaid),
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var b models.Booking
	err := q.First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) DeleteStalePendingBookings(
	ctx context.Context,
	olderThan time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where(
			"status = ? AND payment_status = ? AND created_at < ?",
			string(domain.StatusPending), string(domain.PaymentPending), olderThan,
		).
		Delete(&models.Booking{})

	return res.RowsAffected, res.Error
}

func (r *BookingGormRepository) ListOccupiedBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "date", "time", "service_type").
		Where(
			"status = ? OR payment_status = ?",
			string(domain.StatusConfirmed), string(domain.PaymentPaid),
		).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// BlockedSlot
// --------------------------------------------------

func (r *BookingGormRepository) ListBlockedSlots(
	ctx context.Context,
) ([]models.BlockedSlot, error) {

	var slots []models.BlockedSlot
	if err := r.db.WithContext(ctx).
		Order("date ASC, \"time\" ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *BookingGormRepository) FindBlockedSlot(
	ctx context.Context,
	date time.Time,
	timeLabel string,
) (*models.BlockedSlot, error) {

	var s models.BlockedSlot
	err := r.db.WithContext(ctx).
		Where("date = ? AND \"time\" = ?", date, timeLabel).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *BookingGormRepository) CreateBlockedSlot(
	ctx context.Context,
	s *models.BlockedSlot,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *BookingGormRepository) DeleteBlockedSlot(
	ctx context.Context,
	id string,
) error {
	res := r.db.WithContext(ctx).Delete(&models.BlockedSlot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("blocked_slot_not_found")
	}
	return nil
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	return &u, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
