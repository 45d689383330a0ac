package booking

import (
	"context"
	"time"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/timezone"
)

// GetAvailability answers "which slots are open" for the whole
// bookable horizon. Point-in-time snapshot, no locking; the final
// arbitration happens when a booking actually claims its slot.
type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  timezone.Now,
	}
}

func (uc *GetAvailability) Execute(ctx context.Context) ([]domain.DaySlots, error) {

	occupied := make(map[string]struct{})

	// Only confirmed or paid bookings count as holding a slot.
	// Pending unpaid attempts leave it claimable.
	bookings, err := uc.repo.ListOccupiedBookings(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		occupied[domain.SlotKey(b.Date, b.Time)] = struct{}{}
	}

	blocked, err := uc.repo.ListBlockedSlots(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range blocked {
		occupied[domain.SlotKey(s.Date, s.Time)] = struct{}{}
	}

	var out []domain.DaySlots
	for _, date := range domain.HorizonDates(uc.now()) {
		var times []string
		for _, t := range domain.TimeSlots {
			if _, taken := occupied[domain.SlotKey(date, t)]; !taken {
				times = append(times, t)
			}
		}

		if len(times) > 0 {
			out = append(out, domain.DaySlots{
				Date:  domain.DateKey(date),
				Times: times,
			})
		}
	}

	return out, nil
}
