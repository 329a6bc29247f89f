// Package config holds the server's runtime configuration.
//
// Precedence order (highest wins):
//  1. command-line flags (BindFlags)
//  2. environment variables, including a .env file loaded by main (LoadFromEnv)
//  3. defaults (Default)
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config is the complete server configuration.
type Config struct {
	Host        string
	Port        int
	MaxAttempts int

	// Word lists. Both empty selects the embedded lists.
	AnswersPath string
	GuessesPath string

	// IdleTimeout bounds the wait for each guess. Zero disables it.
	IdleTimeout time.Duration
	// ShutdownGrace is how long shutdown waits for live sessions.
	ShutdownGrace time.Duration

	// AdminAddr enables the diagnostic HTTP API when set (e.g. "127.0.0.1:5176").
	AdminAddr string
	// DBPath enables the finished-session journal when set.
	DBPath string

	LogLevel  string
	LogFormat string // "json" or "console"
}

// Error represents an invalid configuration value.
type Error struct {
	Field   string      // flag name
	Value   interface{} // offending value (nil if missing)
	Message string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	return msg + ": " + e.Message
}

// Addr returns the game listener address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &Error{Field: "port", Value: c.Port, Message: "must be between 1 and 65535"}
	}
	if c.MaxAttempts < 1 {
		return &Error{Field: "max-attempts", Value: c.MaxAttempts, Message: "must be at least 1"}
	}
	if c.IdleTimeout < 0 {
		return &Error{Field: "idle-timeout", Value: c.IdleTimeout, Message: "must not be negative"}
	}
	if c.ShutdownGrace < 0 {
		return &Error{Field: "shutdown-grace", Value: c.ShutdownGrace, Message: "must not be negative"}
	}
	if c.AnswersPath != "" && c.GuessesPath == "" {
		return &Error{Field: "guesses", Message: "required when --answers is set"}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return &Error{Field: "log-level", Value: c.LogLevel, Message: "unknown level"}
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return &Error{Field: "log-format", Value: c.LogFormat, Message: `must be "json" or "console"`}
	}
	return nil
}
