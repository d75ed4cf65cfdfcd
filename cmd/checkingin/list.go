// ABOUTME: CLI command for listing daily physical metrics.
// ABOUTME: One row per day, newest first.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List daily health metrics",
	Long: `List recent daily physical metrics, newest first.

OUTPUT FORMAT:

  DATE  SLEEP  RECOVERY  STRAIN  HRV  RHR  STEPS  CALORIES

  A dash means the value was not found in that day's screenshot.

EXAMPLES:

  checkingin list          # Last 7 days with data
  checkingin list -n 30    # Last 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, err := tracker.ListMetrics(cmd.Context(), listLimit)
		if err != nil {
			return err
		}

		if len(metrics) == 0 {
			fmt.Println("No metrics found.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Println(faint.Sprint(strings.Join([]string{
			padRight("DATE", 11), padRight("SLEEP", 6), padRight("REC", 5), padRight("STRAIN", 7),
			padRight("HRV", 5), padRight("RHR", 5), padRight("STEPS", 7), "KCAL",
		}, " ")))

		for _, m := range metrics {
			fmt.Println(strings.Join([]string{
				faint.Sprint(padRight(models.FormatDate(m.Date), 11)),
				padRight(fmtFloat(m.SleepHours, "%.1f"), 6),
				padRight(fmtFloat(m.RecoveryPercent, "%.0f%%"), 5),
				padRight(fmtFloat(m.Strain, "%.1f"), 7),
				padRight(fmtFloat(m.HRV, "%.0f"), 5),
				padRight(fmtFloat(m.RestingHeartRate, "%.0f"), 5),
				padRight(fmtInt(m.Steps), 7),
				fmtInt(m.Calories),
			}, " "))
		}

		return nil
	},
}

func fmtFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 7, "max number of days")
	rootCmd.AddCommand(listCmd)
}
