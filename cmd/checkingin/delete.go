// ABOUTME: CLI command for deleting a day's metrics or journal entry.
// ABOUTME: Records are addressed by calendar date.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <metric|journal> <date>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a day's metrics or journal entry",
	Long: `Delete the physical metrics or the journal entry recorded on a date.

DATES:

  YYYY-MM-DD, "today", or "yesterday"

EXAMPLES:

  checkingin delete metric 2024-03-15     # Remove that day's metrics
  checkingin delete journal today         # Remove today's journal entry
  checkingin rm metric yesterday

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"metric", "journal"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		date, err := parseDay(args[1], tracker.Today())
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", args[1], err)
		}

		switch kind {
		case "metric", "metrics":
			err = tracker.DeleteMetric(cmd.Context(), date)
		case "journal":
			err = tracker.DeleteJournalEntry(cmd.Context(), date)
		default:
			return fmt.Errorf("unknown record kind: %s (use metric or journal)", kind)
		}

		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no %s found for %s", kind, models.FormatDate(date))
		}
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", kind, err)
		}

		color.Yellow("✗ Deleted %s for %s", kind, models.FormatDate(date))
		return nil
	},
}

// parseDay accepts the relative names "today" and "yesterday" as well as
// any format parseTime understands.
func parseDay(s string, today time.Time) (time.Time, error) {
	switch s {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return models.Day(t), nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
