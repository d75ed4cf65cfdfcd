// ABOUTME: Calendar-day helpers shared by storage and insights.
// ABOUTME: Records are keyed by date only; time of day is discarded.
package models

import "time"

// DateLayout is the storage and display format for calendar days.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its own calendar day.
// The year, month and day are taken from t's location before conversion.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day,
// comparing date components only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
