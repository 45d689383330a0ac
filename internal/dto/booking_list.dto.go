package dto

import (
	"time"

	"github.com/tngolf/booking-api/internal/models"
)

// BookingListDTO is the coach's list view: booking fields plus the
// owning customer's contact details.
type BookingListDTO struct {
	ID                      string     `json:"id"`
	ServiceType             string     `json:"service_type"`
	Date                    time.Time  `json:"date"`
	Time                    string     `json:"time"`
	Status                  string     `json:"status"`
	PaymentStatus           string     `json:"payment_status"`
	PaymentMethod           string     `json:"payment_method"`
	Amount                  int64      `json:"amount"`
	Notes                   string     `json:"notes"`
	CancellationRequest     string     `json:"cancellation_request"`
	CancellationRequestedAt *time.Time `json:"cancellation_requested_at"`
	UserName                string     `json:"user_name"`
	UserEmail               string     `json:"user_email"`
	CreatedAt               time.Time  `json:"created_at"`
}

func FromBooking(b models.Booking) BookingListDTO {
	return BookingListDTO{
		ID:                      b.ID,
		ServiceType:             b.ServiceType,
		Date:                    b.Date,
		Time:                    b.Time,
		Status:                  b.Status,
		PaymentStatus:           b.PaymentStatus,
		PaymentMethod:           b.PaymentMethod,
		Amount:                  b.Amount,
		Notes:                   b.Notes,
		CancellationRequest:     b.CancellationRequest,
		CancellationRequestedAt: b.CancellationRequestedAt,
		UserName:                b.User.Name,
		UserEmail:               b.User.Email,
		CreatedAt:               b.CreatedAt,
	}
}
