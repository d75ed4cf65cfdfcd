// ABOUTME: CLI command for uploading a fitness app screenshot.
// ABOUTME: Extracts today's physical metrics with the vision model and stores them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/checkingin/internal/models"
	"github.com/harperreed/checkingin/internal/vision"
	"github.com/spf13/cobra"
)

var uploadMime string

var uploadCmd = &cobra.Command{
	Use:     "upload <image>",
	Aliases: []string{"up"},
	Short:   "Read today's health metrics from a screenshot",
	Long: `Upload a screenshot from a fitness app (Whoop, Apple Health, Oura, ...)
and store the metrics it shows as today's physical record.

EXTRACTED METRICS:

  sleep hours, recovery %, strain, HRV (ms), resting heart rate (bpm),
  steps, calories

  Values the model cannot read are left empty. Uploading again on the
  same day replaces the whole record.

REQUIREMENTS:

  GEMINI_API_KEY must be set in the environment or a .env file.

EXAMPLES:

  checkingin upload ~/Downloads/whoop.png
  checkingin upload health.heic --mime image/heic`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		res, err := tracker.UploadScreenshot(cmd.Context(), image, uploadMime)
		if err != nil {
			if errors.Is(err, vision.ErrMissingAPIKey) {
				return fmt.Errorf("%w (add it to your environment or .env)", err)
			}
			return err
		}

		if res.Extracted.Empty() {
			color.Yellow("! No metrics found in %s", args[0])
			return nil
		}

		color.Green("✓ Saved health metrics for %s", models.FormatDate(res.Metric.Date))
		printPhysicalMetric(res.Metric)
		return nil
	},
}

func printPhysicalMetric(m *models.PhysicalMetric) {
	faint := color.New(color.Faint)
	row := func(label, value string) {
		fmt.Printf("  %s %s\n", faint.Sprint(padRight(label, 14)), value)
	}

	if m.SleepHours != nil {
		row("sleep", fmt.Sprintf("%.1f h", *m.SleepHours))
	}
	if m.RecoveryPercent != nil {
		row("recovery", fmt.Sprintf("%.0f%%", *m.RecoveryPercent))
	}
	if m.Strain != nil {
		row("strain", fmt.Sprintf("%.1f", *m.Strain))
	}
	if m.HRV != nil {
		row("hrv", fmt.Sprintf("%.0f ms", *m.HRV))
	}
	if m.RestingHeartRate != nil {
		row("resting hr", fmt.Sprintf("%.0f bpm", *m.RestingHeartRate))
	}
	if m.Steps != nil {
		row("steps", fmt.Sprintf("%d", *m.Steps))
	}
	if m.Calories != nil {
		row("calories", fmt.Sprintf("%d kcal", *m.Calories))
	}
}

func init() {
	uploadCmd.Flags().StringVar(&uploadMime, "mime", "", "image MIME type (detected from the file by default)")
	rootCmd.AddCommand(uploadCmd)
}
