package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"size:36;index;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	ServiceType string    `gorm:"size:40;not null" json:"service_type"`
	Date        time.Time `gorm:"not null" json:"date"`
	Time        string    `gorm:"size:5;not null" json:"time"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20" json:"payment_status"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	Amount        int64  `json:"amount"`

	Notes string `gorm:"size:500" json:"notes"`

	CancellationRequest     string     `gorm:"size:20" json:"cancellation_request"`
	CancellationRequestedAt *time.Time `json:"cancellation_requested_at"`

	CheckoutSessionID string `gorm:"size:255;index" json:"-"`
	PaymentIntentID   string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
