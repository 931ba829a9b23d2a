package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/04pril/minesweeper-miniapp/internal/config"
)

var (
	cfg = config.Config{}
	log = logrus.New()

	apiURL   string
	logLevel string
	logJSON  bool
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Minesweeper with online stats",
	Long: `Minesweeper in three fixed difficulties. Finished games are reported
to the stats service when a player id is configured.

Environment:
  MINESWEEPER_API_URL      stats service base URL
  MINESWEEPER_USER_ID      player id; results are not sent without it
  MINESWEEPER_FIRST_NAME   player first name
  MINESWEEPER_USERNAME     player username
  MINESWEEPER_INIT_DATA    opaque launch token forwarded with results
  MINESWEEPER_PREFS        preferences file path
  MINESWEEPER_LOG_LEVEL    log level (debug, info, warn, error)`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Stats service base URL (overrides MINESWEEPER_API_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "Stats service request timeout")
}

// loadConfig reads the environment and lets explicit flags win.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.FromEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		c.APIBase = apiURL
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-json") {
		c.LogJSON = logJSON
	}
	if flags.Changed("timeout") {
		c.Timeout = timeout
	}
	if err := c.ConfigureLogger(log); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
