package timezone

import "time"

// The business operates in a single locale. All calendar-day math
// happens in this zone to avoid off-by-one dates from UTC timestamps.
const DefaultTimezone = "Europe/Stockholm"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
