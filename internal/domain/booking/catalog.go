package booking

import (
	"time"

	"github.com/tngolf/booking-api/internal/timezone"
)

// TimeSlots mirrors the calendar view exactly. The spacing is
// irregular on purpose; do not derive it from a stride.
var TimeSlots = []string{
	"10:00", "10:30", "10:45", "11:00", "11:30", "11:45",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30", "18:00",
}

// The bookable horizon runs from tomorrow through HorizonMonths ahead,
// skipping ExcludedWeekday.
const HorizonMonths = 3

const ExcludedWeekday = time.Sunday

type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // SEK
}

// Services is the single source of truth for offerings and prices,
// shared by booking creation, checkout and receipts.
var Services = map[string]Service{
	"golftraning": {
		Name:        "Golfträning",
		Description: "Personlig golfträning för att förbättra ditt tekniska spel",
		Price:       1079,
	},
	"mental-traning": {
		Name:        "Mental träning (Golf & Mind)",
		Description: "Arbeta med din mentala styrka och fokus",
		Price:       1079,
	},
	"gruppträning": {
		Name:        "Gruppträning",
		Description: "Träna tillsammans med andra golfspelare",
		Price:       1079,
	},
}

func IsValidTime(label string) bool {
	for _, t := range TimeSlots {
		if t == label {
			return true
		}
	}
	return false
}

// NormalizeDate strips the time-of-day, keeping calendar-day identity
// in the business locale.
func NormalizeDate(t time.Time) time.Time {
	local := t.In(timezone.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, timezone.Location())
}

// DateKey renders a calendar day as YYYY-MM-DD in the business locale.
func DateKey(t time.Time) string {
	return t.In(timezone.Location()).Format("2006-01-02")
}

// SlotKey identifies a slot for set membership checks.
func SlotKey(date time.Time, label string) string {
	return DateKey(date) + "_" + label
}

// SlotStart combines a normalized date with a slot label into the
// moment the session begins.
func SlotStart(date time.Time, label string) time.Time {
	hm, err := time.Parse("15:04", label)
	if err != nil {
		return NormalizeDate(date)
	}
	local := date.In(timezone.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), hm.Hour(), hm.Minute(), 0, 0, timezone.Location())
}

// HorizonDates generates every bookable calendar day from the day
// after now through HorizonMonths from now, excluding ExcludedWeekday.
func HorizonDates(now time.Time) []time.Time {
	today := NormalizeDate(now)
	end := today.AddDate(0, HorizonMonths, 0)

	var dates []time.Time
	for d := today.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == ExcludedWeekday {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
