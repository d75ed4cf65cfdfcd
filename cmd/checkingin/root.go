// ABOUTME: Root Cobra command for the checkingin CLI.
// ABOUTME: Loads config, logging, storage, and the tracker via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/checkingin/internal/config"
	"github.com/harperreed/checkingin/internal/logging"
	"github.com/harperreed/checkingin/internal/storage"
	"github.com/harperreed/checkingin/internal/vision"
	"github.com/harperreed/checkingin/internal/wellness"
	"github.com/spf13/cobra"
)

// Set by the release build.
var version = "dev"

var (
	cfg     *config.Config
	db      *storage.DB
	tracker *wellness.Tracker

	flagDataDir string
	flagUser    string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "checkingin",
	Short: "Daily wellness check-in: health screenshots, mood journal, insights",
	Long: `CheckingIn tracks your physical and mental wellness one day at a time.

WHAT IT TRACKS:

  Physical   sleep hours, recovery %, strain, HRV, resting heart rate,
             steps, calories (read from fitness app screenshots)
  Mental     daily mood (1-5), journal entry, gratitude, goals

QUICK START:

  $ checkingin upload whoop.png                   # Read today's metrics from a screenshot
  $ checkingin journal add --mood 4 --entry "..."  # Log today's mood
  $ checkingin insights                           # Weekly trends and suggestions
  $ checkingin list                               # Recent physical metrics

SCREENSHOT EXTRACTION:

  Uploads are read by Google Gemini. Set GEMINI_API_KEY in your environment
  or in a .env file in the working directory.

MCP INTEGRATION:

  Run 'checkingin mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "checkingin": { "command": "checkingin", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Records live in SQLite at ~/.local/share/checkingin/checkingin.db, one
  physical record and one journal entry per day. Logs are written to
  ~/.local/share/checkingin/logs/checkingin.log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagUser != "" {
			cfg.User = flagUser
		}

		if err := logging.Init(logging.Config{Debug: flagDebug, DataDir: cfg.GetDataDir()}); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		if isConfigCommand(cmd) {
			return nil
		}

		db, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logging.Debug("opened database", "path", db.Path(), "command", cmd.CommandPath())

		var extractor vision.Extractor
		if cfg.APIKey != "" {
			client, err := vision.NewGeminiClient(vision.Options{
				APIKey: cfg.APIKey,
				Model:  cfg.GeminiModel,
			})
			if err != nil {
				return err
			}
			extractor = client
		}

		tracker = wellness.New(db, extractor, cfg.GetUser(), wellness.WithLookbackDays(cfg.LookbackDays))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeDB()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("checkingin %s\n", version)
	},
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func closeDB() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// Execute runs the root command. Post-run hooks are skipped when a command
// fails, so the database is closed here as well.
func Execute() error {
	defer func() { _ = closeDB() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/checkingin)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "user to record for (default \"default\")")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log debug output to stderr")
	rootCmd.AddCommand(versionCmd)
}
