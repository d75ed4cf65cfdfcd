// ABOUTME: Journal statistics: entry count, average mood, and daily streak.
// ABOUTME: Streak counts consecutive days ending today that have an entry.
package insights

import (
	"time"

	"github.com/harperreed/checkingin/internal/models"
)

// JournalStats summarizes a user's journaling habit.
type JournalStats struct {
	TotalEntries int     `json:"totalEntries"`
	AvgMood      float64 `json:"avgMood"`
	Streak       int     `json:"streak"`
}

// ComputeJournalStats counts and averages window, and measures the streak
// over history. Both slices are ordered most recent first.
func ComputeJournalStats(window, history []*models.MentalEntry, today time.Time) JournalStats {
	return JournalStats{
		TotalEntries: len(window),
		AvgMood:      round1(averageMood(window)),
		Streak:       Streak(history, today),
	}
}

// Streak walks entries newest first and counts how many line up with today,
// yesterday, and so on, stopping at the first gap.
func Streak(entries []*models.MentalEntry, today time.Time) int {
	streak := 0
	for i, e := range entries {
		expected := today.AddDate(0, 0, -i)
		if !models.SameDay(e.Date, expected) {
			break
		}
		streak++
	}
	return streak
}
