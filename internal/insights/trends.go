// ABOUTME: Weekly averages and mood trend classification.
// ABOUTME: Rounds half-up so 2.25 becomes 2.3 and 6500.5 becomes 6501.
package insights

import (
	"math"
	"sort"

	"github.com/harperreed/checkingin/internal/models"
)

// trendThreshold is the half-to-half mood change needed to leave "stable".
const trendThreshold = 0.5

// ComputeWeeklyTrends averages the window and scores it.
func ComputeWeeklyTrends(physical []*models.PhysicalMetric, mental []*models.MentalEntry) WeeklyTrends {
	avgMood := averageMood(mental)

	var avgSteps float64
	if len(physical) > 0 {
		steps := collect(physical, stepsOf)
		avgSteps = sum(steps) / math.Max(1, float64(len(steps)))
	}

	return WeeklyTrends{
		AvgMood:              round1(avgMood),
		AvgSteps:             int(roundHalfUp(avgSteps)),
		EntriesCount:         len(mental),
		HealthDataCount:      len(physical),
		MoodTrend:            ClassifyMoodTrend(mental),
		OverallWellnessScore: OverallScore(PhysicalWellnessScore(physical), avgMood),
	}
}

// ClassifyMoodTrend compares the mean mood of the older half of the window
// with the newer half. The older half gets the extra entry when the count is odd.
func ClassifyMoodTrend(entries []*models.MentalEntry) MoodTrend {
	if len(entries) < 2 {
		return TrendStable
	}

	sorted := make([]*models.MentalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	mid := (len(sorted) + 1) / 2
	diff := averageMood(sorted[mid:]) - averageMood(sorted[:mid])

	switch {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// averageMood is the unrounded mean mood, 0 for no entries.
func averageMood(entries []*models.MentalEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		total += e.Mood
	}
	return float64(total) / float64(len(entries))
}

func stepsOf(m *models.PhysicalMetric) (float64, bool) {
	if m.Steps == nil {
		return 0, false
	}
	return float64(*m.Steps), true
}

func sleepOf(m *models.PhysicalMetric) (float64, bool) {
	if m.SleepHours == nil {
		return 0, false
	}
	return *m.SleepHours, true
}

func recoveryOf(m *models.PhysicalMetric) (float64, bool) {
	if m.RecoveryPercent == nil {
		return 0, false
	}
	return *m.RecoveryPercent, true
}

// collect returns the non-nil values of one field across the window.
func collect(records []*models.PhysicalMetric, field func(*models.PhysicalMetric) (float64, bool)) []float64 {
	var values []float64
	for _, r := range records {
		if v, ok := field(r); ok {
			values = append(values, v)
		}
	}
	return values
}

// meanOf returns the mean of the field's non-nil values and whether any existed.
func meanOf(records []*models.PhysicalMetric, field func(*models.PhysicalMetric) (float64, bool)) (float64, bool) {
	values := collect(records, field)
	if len(values) == 0 {
		return 0, false
	}
	return sum(values) / float64(len(values)), true
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func round1(x float64) float64 {
	return roundHalfUp(x*10) / 10
}
