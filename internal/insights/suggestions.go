// ABOUTME: Canned wellness suggestions derived from weekly averages.
// ABOUTME: Rules run in a fixed order and the list is cut at three.
package insights

import "github.com/harperreed/checkingin/internal/models"

// SuggestionType groups suggestions by the area they address.
type SuggestionType string

const (
	SuggestionMental   SuggestionType = "mental"
	SuggestionPhysical SuggestionType = "physical"
	SuggestionRecovery SuggestionType = "recovery"
)

// Priority is a display hint; it does not affect ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// MaxSuggestions caps the list returned by GenerateSuggestions.
const MaxSuggestions = 3

// Suggestion is one actionable tip.
type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Priority    Priority       `json:"priority"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Action      string         `json:"action"`
}

var (
	lowMoodSuggestion = Suggestion{
		Type:        SuggestionMental,
		Priority:    PriorityHigh,
		Title:       "Focus on Mental Wellness",
		Description: "Your mood has been lower this week. Consider practicing mindfulness or reaching out to someone you trust.",
		Action:      "Try journaling about positive moments or speaking with a counselor",
	}
	highMoodSuggestion = Suggestion{
		Type:        SuggestionMental,
		Priority:    PriorityLow,
		Title:       "Maintain Your Positive Momentum",
		Description: "You're doing great this week! Keep up the habits that are working for you.",
		Action:      "Consider sharing what's working well with others",
	}
	movementSuggestion = Suggestion{
		Type:        SuggestionPhysical,
		Priority:    PriorityMedium,
		Title:       "Increase Daily Movement",
		Description: "Your step count has been below recommended levels. Try to incorporate more walking into your routine.",
		Action:      "Aim for 7,000+ steps daily with short walks throughout the day",
	}
	sleepSuggestion = Suggestion{
		Type:        SuggestionPhysical,
		Priority:    PriorityHigh,
		Title:       "Prioritize Better Sleep",
		Description: "You're averaging less than 7 hours of sleep. Quality sleep is crucial for both physical and mental health.",
		Action:      "Try setting a consistent bedtime and avoiding screens 1 hour before sleep",
	}
	recoverySuggestion = Suggestion{
		Type:        SuggestionRecovery,
		Priority:    PriorityMedium,
		Title:       "Focus on Recovery",
		Description: "Your recovery scores suggest you may need more rest or stress management.",
		Action:      "Consider lighter workouts and stress-reduction techniques like meditation",
	}
)

// GenerateSuggestions evaluates mood, steps, sleep, then recovery and keeps
// the first MaxSuggestions that fire, in that order. The mood rule needs at
// least one journal entry, since an avgMood of 0 means "no data".
func GenerateSuggestions(physical []*models.PhysicalMetric, mental []*models.MentalEntry, avgMood float64) []Suggestion {
	suggestions := make([]Suggestion, 0, 4)

	if len(mental) > 0 {
		if avgMood < 3 {
			suggestions = append(suggestions, lowMoodSuggestion)
		} else if avgMood > 4 {
			suggestions = append(suggestions, highMoodSuggestion)
		}
	}

	if steps, ok := meanOf(physical, stepsOf); ok && steps < 6000 {
		suggestions = append(suggestions, movementSuggestion)
	}

	if sleep, ok := meanOf(physical, sleepOf); ok && sleep < 7 {
		suggestions = append(suggestions, sleepSuggestion)
	}

	if recovery, ok := meanOf(physical, recoveryOf); ok && recovery < 70 {
		suggestions = append(suggestions, recoverySuggestion)
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}
