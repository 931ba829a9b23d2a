// Package config collects runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/04pril/minesweeper-miniapp/internal/host"
)

const (
	DefaultAPIBase  = "http://localhost:8080"
	DefaultLogLevel = "info"
	DefaultTimeout  = 10 * time.Second
)

// Config is everything the CLI needs to build a game.
type Config struct {
	APIBase   string
	UserID    int64
	FirstName string
	Username  string
	InitData  string
	PrefsPath string
	LogLevel  string
	LogJSON   bool
	Timeout   time.Duration
}

// FromEnv reads MINESWEEPER_* variables, falling back to defaults for
// anything unset. A malformed user id is an error.
func FromEnv() (Config, error) {
	c := Config{
		APIBase:   getenv("MINESWEEPER_API_URL", DefaultAPIBase),
		FirstName: os.Getenv("MINESWEEPER_FIRST_NAME"),
		Username:  os.Getenv("MINESWEEPER_USERNAME"),
		InitData:  os.Getenv("MINESWEEPER_INIT_DATA"),
		PrefsPath: os.Getenv("MINESWEEPER_PREFS"),
		LogLevel:  getenv("MINESWEEPER_LOG_LEVEL", DefaultLogLevel),
		Timeout:   DefaultTimeout,
	}

	if v := os.Getenv("MINESWEEPER_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("MINESWEEPER_USER_ID: %w", err)
		}
		c.UserID = id
	}
	if v := os.Getenv("MINESWEEPER_LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("MINESWEEPER_LOG_JSON: %w", err)
		}
		c.LogJSON = b
	}
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Container builds the host container for this configuration. Without a
// user id the player is anonymous and results are not reported.
func (c Config) Container() *host.Static {
	s := &host.Static{Token: c.InitData}
	if c.UserID != 0 {
		s.Player = &host.User{ID: c.UserID, FirstName: c.FirstName, Username: c.Username}
	}
	return s
}

// ConfigureLogger applies the level and format to l.
func (c Config) ConfigureLogger(l *logrus.Logger) error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)
	if c.LogJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
