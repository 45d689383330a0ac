package booking

// DaySlots groups the open time labels of one calendar day.
// Days without any open time are never emitted.
type DaySlots struct {
	Date  string   `json:"date"` // YYYY-MM-DD
	Times []string `json:"times"`
}
