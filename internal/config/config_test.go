package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"MINESWEEPER_API_URL", "MINESWEEPER_USER_ID", "MINESWEEPER_FIRST_NAME",
		"MINESWEEPER_USERNAME", "MINESWEEPER_INIT_DATA", "MINESWEEPER_PREFS",
		"MINESWEEPER_LOG_LEVEL", "MINESWEEPER_LOG_JSON",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBase, c.APIBase)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Zero(t, c.UserID)
	assert.False(t, c.LogJSON)

	_, ok := c.Container().User()
	assert.False(t, ok)
}

func TestFromEnvPlayer(t *testing.T) {
	clearEnv(t)
	t.Setenv("MINESWEEPER_API_URL", "https://stats.example")
	t.Setenv("MINESWEEPER_USER_ID", "42")
	t.Setenv("MINESWEEPER_FIRST_NAME", "Ada")
	t.Setenv("MINESWEEPER_USERNAME", "ada")
	t.Setenv("MINESWEEPER_INIT_DATA", "query_id=1")
	t.Setenv("MINESWEEPER_LOG_JSON", "true")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://stats.example", c.APIBase)
	assert.True(t, c.LogJSON)

	ct := c.Container()
	u, ok := ct.User()
	require.True(t, ok)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "query_id=1", ct.InitData())
}

func TestFromEnvBadUserID(t *testing.T) {
	clearEnv(t)
	t.Setenv("MINESWEEPER_USER_ID", "forty-two")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "MINESWEEPER_USER_ID")
}

func TestConfigureLogger(t *testing.T) {
	l := logrus.New()
	require.NoError(t, Config{LogLevel: "debug", LogJSON: true}.ConfigureLogger(l))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	assert.Error(t, Config{LogLevel: "loud"}.ConfigureLogger(l))
}
