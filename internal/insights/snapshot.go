// ABOUTME: Wellness insights snapshot assembled from a recent window of records.
// ABOUTME: Pure functions only; nothing here reads, stores, or renders data.
package insights

import (
	"time"

	"github.com/harperreed/checkingin/internal/models"
)

// MoodTrend classifies how mood moved across the window.
type MoodTrend string

const (
	TrendImproving MoodTrend = "improving"
	TrendDeclining MoodTrend = "declining"
	TrendStable    MoodTrend = "stable"
)

// TodayStatus reports what the user has logged today.
type TodayStatus struct {
	HasHealthData       bool `json:"hasHealthData"`
	HasMentalHealthData bool `json:"hasMentalHealthData"`
	Mood                *int `json:"mood"`
	Steps               *int `json:"steps"`
	Calories            *int `json:"calories"`
}

// WeeklyTrends summarizes the window. A zero AvgMood with EntriesCount 0
// means no data, not a mood of zero.
type WeeklyTrends struct {
	AvgMood              float64   `json:"avgMood"`
	AvgSteps             int       `json:"avgSteps"`
	EntriesCount         int       `json:"entriesCount"`
	HealthDataCount      int       `json:"healthDataCount"`
	MoodTrend            MoodTrend `json:"moodTrend"`
	OverallWellnessScore float64   `json:"overallWellnessScore"`
}

// MoodPoint is one day of journal data for charting.
type MoodPoint struct {
	Date      time.Time `json:"date"`
	Mood      int       `json:"mood"`
	Gratitude *string   `json:"gratitude"`
}

// ActivityPoint is one day of physical data for charting.
type ActivityPoint struct {
	Date            time.Time `json:"date"`
	Steps           *int      `json:"steps"`
	Calories        *int      `json:"calories"`
	SleepHours      *float64  `json:"sleepHours"`
	RecoveryPercent *float64  `json:"recoveryPercent"`
}

// WeeklyData echoes the window in its original order.
type WeeklyData struct {
	MentalHealth   []MoodPoint     `json:"mentalHealth"`
	PhysicalHealth []ActivityPoint `json:"physicalHealth"`
}

// Snapshot is the full insights view for one user. It is never persisted.
type Snapshot struct {
	TodayStatus  TodayStatus  `json:"todayStatus"`
	WeeklyTrends WeeklyTrends `json:"weeklyTrends"`
	Suggestions  []Suggestion `json:"suggestions"`
	WeeklyData   WeeklyData   `json:"weeklyData"`
}

// Compute builds a Snapshot from a window of records ordered most recent
// first. Any input, including empty slices, yields a neutral result.
func Compute(physical []*models.PhysicalMetric, mental []*models.MentalEntry, today time.Time) *Snapshot {
	trends := ComputeWeeklyTrends(physical, mental)
	return &Snapshot{
		TodayStatus:  ComputeTodayStatus(physical, mental, today),
		WeeklyTrends: trends,
		Suggestions:  GenerateSuggestions(physical, mental, averageMood(mental)),
		WeeklyData:   weeklyData(physical, mental),
	}
}

// ComputeTodayStatus finds today's records by calendar-day equality.
func ComputeTodayStatus(physical []*models.PhysicalMetric, mental []*models.MentalEntry, today time.Time) TodayStatus {
	var status TodayStatus

	for _, m := range physical {
		if models.SameDay(m.Date, today) {
			status.HasHealthData = true
			status.Steps = m.Steps
			status.Calories = m.Calories
			break
		}
	}

	for _, e := range mental {
		if models.SameDay(e.Date, today) {
			mood := e.Mood
			status.HasMentalHealthData = true
			status.Mood = &mood
			break
		}
	}

	return status
}

func weeklyData(physical []*models.PhysicalMetric, mental []*models.MentalEntry) WeeklyData {
	data := WeeklyData{
		MentalHealth:   make([]MoodPoint, 0, len(mental)),
		PhysicalHealth: make([]ActivityPoint, 0, len(physical)),
	}
	for _, e := range mental {
		data.MentalHealth = append(data.MentalHealth, MoodPoint{
			Date:      e.Date,
			Mood:      e.Mood,
			Gratitude: e.Gratitude,
		})
	}
	for _, m := range physical {
		data.PhysicalHealth = append(data.PhysicalHealth, ActivityPoint{
			Date:            m.Date,
			Steps:           m.Steps,
			Calories:        m.Calories,
			SleepHours:      m.SleepHours,
			RecoveryPercent: m.RecoveryPercent,
		})
	}
	return data
}
