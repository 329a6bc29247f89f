package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadFromEnv reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WORDLE_HOST", "PORT", "WORDLE_PORT", "WORDLE_MAX_ATTEMPTS",
		"WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE", "WORDLE_IDLE_TIMEOUT",
		"WORDLE_SHUTDOWN_GRACE", "WORDLE_ADMIN_ADDR", "WORDLE_DB",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, DefaultShutdownGrace, cfg.ShutdownGrace)
	assert.Zero(t, cfg.IdleTimeout)
	assert.Empty(t, cfg.AdminAddr)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "127.0.0.1:5175", cfg.Addr())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORDLE_HOST", "0.0.0.0")
	t.Setenv("PORT", "7000")
	t.Setenv("WORDLE_MAX_ATTEMPTS", "8")
	t.Setenv("WORDLE_IDLE_TIMEOUT", "45")
	t.Setenv("WORDLE_SHUTDOWN_GRACE", "2s")
	t.Setenv("WORDLE_DB", "./data/wordle.db")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 8, cfg.MaxAttempts)
	assert.Equal(t, 45*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 2*time.Second, cfg.ShutdownGrace)
	assert.Equal(t, "./data/wordle.db", cfg.DBPath)
	assert.Equal(t, "console", cfg.LogFormat)

	t.Setenv("WORDLE_PORT", "7001")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Port, "WORDLE_PORT beats PORT")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORDLE_PORT", "7000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load([]string{"-p", "9000", "--log-level", "debug", "--idle-timeout", "1m", "--admin-addr", ":9001"})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.IdleTimeout)
	assert.Equal(t, ":9001", cfg.AdminAddr)
}

func TestLoad_UnknownFlag(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"--nope"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"port low", func(c *Config) { c.Port = 0 }, "port"},
		{"port high", func(c *Config) { c.Port = 70000 }, "port"},
		{"attempts", func(c *Config) { c.MaxAttempts = 0 }, "max-attempts"},
		{"idle", func(c *Config) { c.IdleTimeout = -time.Second }, "idle-timeout"},
		{"grace", func(c *Config) { c.ShutdownGrace = -time.Second }, "shutdown-grace"},
		{"answers alone", func(c *Config) { c.AnswersPath = "a.txt" }, "guesses"},
		{"level", func(c *Config) { c.LogLevel = "loud" }, "log-level"},
		{"format", func(c *Config) { c.LogFormat = "xml" }, "log-format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			err := cfg.Validate()
			var ce *Error
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, ce.Error(), "--"+tt.field)
		})
	}

	cfg := Default()
	cfg.GuessesPath = "g.txt"
	assert.NoError(t, cfg.Validate(), "guesses alone is allowed")
}
