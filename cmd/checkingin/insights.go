// ABOUTME: CLI command for the weekly wellness insights view.
// ABOUTME: Prints today's status, trends, score, and suggestions, or raw JSON.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/checkingin/internal/insights"
	"github.com/spf13/cobra"
)

var insightsJSON bool

var insightsCmd = &cobra.Command{
	Use:     "insights",
	Aliases: []string{"i", "status"},
	Short:   "Show weekly wellness insights",
	Long: `Show what you have logged today, how the past week looks, and up to
three suggestions.

WELLNESS SCORE:

  The overall score (1-10) averages a physical score built from steps,
  sleep, and recovery with your average mood doubled.

EXAMPLES:

  checkingin insights           # Human-readable summary
  checkingin insights --json    # Full snapshot as JSON`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := tracker.Insights(cmd.Context())
		if err != nil {
			return err
		}

		if insightsJSON {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode insights: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printSnapshot(snap)
		return nil
	},
}

func printSnapshot(snap *insights.Snapshot) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	check := func(ok bool) string {
		if ok {
			return color.GreenString("✓")
		}
		return faint.Sprint("·")
	}

	bold.Println("Today")
	today := snap.TodayStatus
	fmt.Printf("  %s health data", check(today.HasHealthData))
	if today.Steps != nil {
		fmt.Printf("  %s", faint.Sprintf("%d steps", *today.Steps))
	}
	if today.Calories != nil {
		fmt.Printf("  %s", faint.Sprintf("%d kcal", *today.Calories))
	}
	fmt.Println()
	fmt.Printf("  %s journal", check(today.HasMentalHealthData))
	if today.Mood != nil {
		fmt.Printf("  %s", moodBar(*today.Mood))
	}
	fmt.Println()
	fmt.Println()

	w := snap.WeeklyTrends
	bold.Println("This week")
	fmt.Printf("  %s %s\n", faint.Sprint(padRight("wellness", 12)), scoreColor(w.OverallWellnessScore))
	fmt.Printf("  %s %.1f  %s\n", faint.Sprint(padRight("avg mood", 12)), w.AvgMood, trendLabel(w.MoodTrend))
	fmt.Printf("  %s %d\n", faint.Sprint(padRight("avg steps", 12)), w.AvgSteps)
	fmt.Printf("  %s %d journal, %d health\n", faint.Sprint(padRight("entries", 12)), w.EntriesCount, w.HealthDataCount)

	if len(snap.Suggestions) == 0 {
		return
	}

	fmt.Println()
	bold.Println("Suggestions")
	for _, s := range snap.Suggestions {
		fmt.Printf("  %s %s\n", priorityMarker(s.Priority), s.Title)
		fmt.Printf("    %s\n", s.Description)
		fmt.Printf("    %s\n", faint.Sprintf("→ %s", s.Action))
	}
}

func scoreColor(score float64) string {
	switch {
	case score >= 7:
		return color.GreenString("%.1f/10", score)
	case score >= 5:
		return color.YellowString("%.1f/10", score)
	default:
		return color.RedString("%.1f/10", score)
	}
}

func trendLabel(t insights.MoodTrend) string {
	switch t {
	case insights.TrendImproving:
		return color.GreenString("↑ improving")
	case insights.TrendDeclining:
		return color.RedString("↓ declining")
	default:
		return color.New(color.Faint).Sprint("→ stable")
	}
}

func priorityMarker(p insights.Priority) string {
	switch p {
	case insights.PriorityHigh:
		return color.RedString("!")
	case insights.PriorityMedium:
		return color.YellowString("•")
	default:
		return color.GreenString("•")
	}
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "print the full snapshot as JSON")
	rootCmd.AddCommand(insightsCmd)
}
