// ABOUTME: PhysicalMetric model for per-day health dashboard values.
// ABOUTME: One record per user and calendar day; every measurement is optional.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedMetrics holds the values a vision model read off a screenshot.
// A nil field means the value was not visible in the image.
type ExtractedMetrics struct {
	SleepHours       *float64 `json:"sleepHours"`
	RecoveryPercent  *float64 `json:"recoveryPercent"`
	Strain           *float64 `json:"strain"`
	HRV              *float64 `json:"hrv"`
	RestingHeartRate *float64 `json:"restingHeartRate"`
	Steps            *int     `json:"steps"`
	Calories         *int     `json:"calories"`
}

// Empty reports whether no field was extracted.
func (e *ExtractedMetrics) Empty() bool {
	return e.SleepHours == nil && e.RecoveryPercent == nil && e.Strain == nil &&
		e.HRV == nil && e.RestingHeartRate == nil && e.Steps == nil && e.Calories == nil
}

// PhysicalMetric is a user's physical health data for one calendar day.
type PhysicalMetric struct {
	ID               uuid.UUID `json:"id" yaml:"id"`
	UserID           string    `json:"userId" yaml:"user_id"`
	Date             time.Time `json:"date" yaml:"date"`
	SleepHours       *float64  `json:"sleepHours,omitempty" yaml:"sleep_hours,omitempty"`
	RecoveryPercent  *float64  `json:"recoveryPercent,omitempty" yaml:"recovery_percent,omitempty"`
	Strain           *float64  `json:"strain,omitempty" yaml:"strain,omitempty"`
	HRV              *float64  `json:"hrv,omitempty" yaml:"hrv,omitempty"`
	RestingHeartRate *float64  `json:"restingHeartRate,omitempty" yaml:"resting_heart_rate,omitempty"`
	Steps            *int      `json:"steps,omitempty" yaml:"steps,omitempty"`
	Calories         *int      `json:"calories,omitempty" yaml:"calories,omitempty"`
	CreatedAt        time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" yaml:"updated_at"`
}

// NewPhysicalMetric creates an empty record for userID on the calendar day of date.
func NewPhysicalMetric(userID string, date time.Time) *PhysicalMetric {
	now := time.Now()
	return &PhysicalMetric{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      Day(date),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyExtraction replaces every measurement with the extracted values.
// Fields the extraction did not report become nil.
func (m *PhysicalMetric) ApplyExtraction(e *ExtractedMetrics) *PhysicalMetric {
	m.SleepHours = e.SleepHours
	m.RecoveryPercent = e.RecoveryPercent
	m.Strain = e.Strain
	m.HRV = e.HRV
	m.RestingHeartRate = e.RestingHeartRate
	m.Steps = e.Steps
	m.Calories = e.Calories
	return m
}

// WithSteps sets the step count.
func (m *PhysicalMetric) WithSteps(steps int) *PhysicalMetric {
	m.Steps = &steps
	return m
}

// WithCalories sets the calorie count.
func (m *PhysicalMetric) WithCalories(calories int) *PhysicalMetric {
	m.Calories = &calories
	return m
}

// WithSleepHours sets hours slept.
func (m *PhysicalMetric) WithSleepHours(hours float64) *PhysicalMetric {
	m.SleepHours = &hours
	return m
}

// WithRecoveryPercent sets the recovery score.
func (m *PhysicalMetric) WithRecoveryPercent(pct float64) *PhysicalMetric {
	m.RecoveryPercent = &pct
	return m
}

// WithStrain sets the daily strain.
func (m *PhysicalMetric) WithStrain(strain float64) *PhysicalMetric {
	m.Strain = &strain
	return m
}

// WithHRV sets heart rate variability in ms.
func (m *PhysicalMetric) WithHRV(hrv float64) *PhysicalMetric {
	m.HRV = &hrv
	return m
}

// WithRestingHeartRate sets resting heart rate in bpm.
func (m *PhysicalMetric) WithRestingHeartRate(bpm float64) *PhysicalMetric {
	m.RestingHeartRate = &bpm
	return m
}
