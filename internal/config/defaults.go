package config

import "time"

// All tuneable defaults live here so CLI flags, environment loading and
// tests agree on them.
const (
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 5175
	DefaultMaxAttempts   = 6
	DefaultShutdownGrace = 5 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
)

// Default returns a Config populated with the defaults above.
func Default() *Config {
	return &Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		MaxAttempts:   DefaultMaxAttempts,
		ShutdownGrace: DefaultShutdownGrace,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}
