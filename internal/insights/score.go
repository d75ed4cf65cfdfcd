// ABOUTME: Heuristic physical and overall wellness scores on a 1-10 scale.
// ABOUTME: Steps, sleep, and recovery each nudge a neutral base of 5.
package insights

import (
	"math"

	"github.com/harperreed/checkingin/internal/models"
)

const (
	neutralScore = 5.0
	minScore     = 1.0
	maxScore     = 10.0
)

// PhysicalWellnessScore scores the window on [1, 10]. Factors with no data
// are skipped; an empty window scores exactly 5.
func PhysicalWellnessScore(physical []*models.PhysicalMetric) float64 {
	if len(physical) == 0 {
		return neutralScore
	}

	score := neutralScore

	if steps, ok := meanOf(physical, stepsOf); ok {
		switch {
		case steps >= 10000:
			score += 1.5
		case steps >= 7000:
			score += 0.5
		case steps < 5000:
			score -= 1
		}
	}

	if sleep, ok := meanOf(physical, sleepOf); ok {
		switch {
		case sleep >= 7 && sleep <= 9:
			score += 1.5
		case sleep >= 6:
			score += 0.5
		default:
			score -= 1
		}
	}

	if recovery, ok := meanOf(physical, recoveryOf); ok {
		switch {
		case recovery >= 80:
			score += 1.5
		case recovery >= 70:
			score += 0.5
		case recovery < 60:
			score -= 1
		}
	}

	return math.Max(minScore, math.Min(maxScore, score))
}

// OverallScore averages the physical score with mood mapped onto 1-10.
// The mood half is not clamped.
func OverallScore(physicalScore, avgMood float64) float64 {
	mentalScore := avgMood * 2
	return round1((physicalScore + mentalScore) / 2)
}
