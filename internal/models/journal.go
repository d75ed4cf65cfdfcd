// ABOUTME: MentalEntry model for the daily mood journal.
// ABOUTME: Mood is a 1-5 scale that defaults to neutral when not given.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Mood scale bounds. DefaultMood is used when the user skips the rating.
const (
	MinMood     = 1
	MaxMood     = 5
	DefaultMood = 3
)

// MentalEntry is a user's journal entry for one calendar day.
type MentalEntry struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"user_id"`
	Date      time.Time `json:"date" yaml:"date"`
	Mood      int       `json:"mood" yaml:"mood"`
	Journal   *string   `json:"journal,omitempty" yaml:"journal,omitempty"`
	Gratitude *string   `json:"gratitude,omitempty" yaml:"gratitude,omitempty"`
	Notes     *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// NewMentalEntry creates an entry for userID on the calendar day of date.
// A mood of 0 means "not given" and becomes DefaultMood.
func NewMentalEntry(userID string, date time.Time, mood int) *MentalEntry {
	if mood == 0 {
		mood = DefaultMood
	}
	now := time.Now()
	return &MentalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      Day(date),
		Mood:      mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValidMood reports whether mood lies on the 1-5 scale.
func IsValidMood(mood int) bool {
	return mood >= MinMood && mood <= MaxMood
}

// WithJournal sets the journal text. Empty text clears it.
func (e *MentalEntry) WithJournal(text string) *MentalEntry {
	e.Journal = optionalString(text)
	return e
}

// WithGratitude sets the gratitude text. Empty text clears it.
func (e *MentalEntry) WithGratitude(text string) *MentalEntry {
	e.Gratitude = optionalString(text)
	return e
}

// WithNotes sets free-form notes such as goals. Empty text clears it.
func (e *MentalEntry) WithNotes(text string) *MentalEntry {
	e.Notes = optionalString(text)
	return e
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
