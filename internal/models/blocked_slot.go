package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockedSlot marks a (date, time) pair as unavailable for booking.
// At most one block may exist per slot.
type BlockedSlot struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Date time.Time `gorm:"not null;uniqueIndex:uniq_blocked_slot" json:"date"`
	Time string    `gorm:"size:5;not null;uniqueIndex:uniq_blocked_slot" json:"time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *BlockedSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
