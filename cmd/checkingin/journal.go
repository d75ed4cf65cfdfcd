// ABOUTME: CLI commands for the daily mood journal.
// ABOUTME: Adds today's entry and lists the week with mood and streak.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/wellness"
	"github.com/spf13/cobra"
)

var (
	journalMood      int
	journalEntry     string
	journalGratitude string
	journalGoals     string
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Mood journal",
	Long: `Record and review your daily mood journal.

One entry per day. Adding again on the same day replaces the entry.

EXAMPLES:

  checkingin journal add --mood 4 --entry "Good run this morning"
  checkingin journal add -m 2 --gratitude "My sister called"
  checkingin journal list`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record today's mood and journal entry",
	Long: `Record today's mood and journal entry.

MOOD SCALE:

  1  very low    2  low    3  neutral (default)    4  good    5  great

EXAMPLES:

  checkingin journal add --mood 4
  checkingin journal add --mood 3 --entry "Busy day" --goals "Sleep by 11"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := tracker.AddJournalEntry(cmd.Context(), wellness.JournalInput{
			Mood:      journalMood,
			Entry:     journalEntry,
			Gratitude: journalGratitude,
			Goals:     journalGoals,
		})
		if err != nil {
			return err
		}

		color.Green("✓ Saved journal entry for %s", models.FormatDate(entry.Date))
		fmt.Printf("  mood %s\n", moodBar(entry.Mood))
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List this week's journal entries",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := tracker.JournalSummary(cmd.Context())
		if err != nil {
			return err
		}

		if len(summary.Entries) == 0 {
			fmt.Println("No journal entries this week.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range summary.Entries {
			text := ""
			if e.Journal != nil {
				text = truncate(*e.Journal, 50)
			}
			fmt.Printf("%s  %s  %s\n",
				faint.Sprint(models.FormatDate(e.Date)),
				moodBar(e.Mood),
				text)
			if e.Gratitude != nil {
				fmt.Printf("            %s\n", faint.Sprintf("grateful for: %s", truncate(*e.Gratitude, 50)))
			}
		}

		fmt.Println()
		fmt.Printf("%d entries, average mood %.1f, streak %s\n",
			summary.Stats.TotalEntries,
			summary.Stats.AvgMood,
			color.CyanString("%d day(s)", summary.Stats.Streak))
		return nil
	},
}

// moodBar renders a mood as filled and empty dots, e.g. "●●●○○ 3/5".
func moodBar(mood int) string {
	filled := mood
	if filled < 0 {
		filled = 0
	}
	if filled > models.MaxMood {
		filled = models.MaxMood
	}
	bar := strings.Repeat("●", filled) + strings.Repeat("○", models.MaxMood-filled)

	c := color.New(color.FgYellow)
	switch {
	case mood >= 4:
		c = color.New(color.FgGreen)
	case mood <= 2:
		c = color.New(color.FgRed)
	}
	return c.Sprintf("%s %d/%d", bar, mood, models.MaxMood)
}

func init() {
	journalAddCmd.Flags().IntVarP(&journalMood, "mood", "m", 0, "mood from 1 to 5 (default 3)")
	journalAddCmd.Flags().StringVarP(&journalEntry, "entry", "e", "", "journal text")
	journalAddCmd.Flags().StringVar(&journalGratitude, "gratitude", "", "something you are grateful for")
	journalAddCmd.Flags().StringVar(&journalGoals, "goals", "", "goals or notes for the day")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	rootCmd.AddCommand(journalCmd)
}
