// ABOUTME: CLI commands for viewing and changing configuration.
// ABOUTME: Settings persist to ~/.config/checkingin/config.json.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/checkingin/internal/config"
	"github.com/harperreed/checkingin/internal/logging"
	"github.com/harperreed/checkingin/internal/vision"
	"github.com/harperreed/checkingin/internal/wellness"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
	Long: `View or change checkingin settings.

SETTINGS:

  data_dir        where the database and logs live
  user            user ID records are stored under
  gemini_model    vision model used for screenshots
  lookback_days   insights window in days

ENVIRONMENT:

  GEMINI_API_KEY            vision API key (never stored in the config file)
  CHECKINGIN_USER           overrides user
  CHECKINGIN_DATA_DIR       overrides data_dir
  CHECKINGIN_MODEL          overrides gemini_model
  CHECKINGIN_LOOKBACK_DAYS  overrides lookback_days

  A .env file in the working directory is read on startup.

EXAMPLES:

  checkingin config show
  checkingin config set user alice
  checkingin config set lookback_days 14`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		row := func(key, value string) {
			fmt.Printf("%s %s\n", faint.Sprint(padRight(key, 16)), value)
		}

		model := cfg.GeminiModel
		if model == "" {
			model = vision.DefaultModel
		}
		lookback := cfg.LookbackDays
		if lookback <= 0 {
			lookback = wellness.DefaultLookbackDays
		}
		apiKey := color.RedString("not set")
		if cfg.APIKey != "" {
			apiKey = color.GreenString("set")
		}

		row("config file", config.GetConfigPath())
		row("data_dir", cfg.GetDataDir())
		row("database", cfg.DBPath())
		row("log file", logging.LogPath(cfg.GetDataDir()))
		row("user", cfg.GetUser())
		row("gemini_model", model)
		row("lookback_days", fmt.Sprintf("%d", lookback))
		row("api key", apiKey)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change a setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Persist only what is in the file, not env or flag overrides.
		fileCfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		key := strings.ToLower(args[0])
		if err := fileCfg.Set(key, args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		logging.Info("config updated", "key", key)
		color.Green("✓ Set %s = %s", key, args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
