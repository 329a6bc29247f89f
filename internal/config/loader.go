package config

// loader.go - configuration from environment variables and flags.

import (
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"
)

// LoadFromEnv overlays environment variables onto cfg. Only non-empty,
// parseable values override. Call it before BindFlags parsing so that flags
// take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("WORDLE_HOST"); v != "" {
		cfg.Host = v
	}
	// PORT is honoured for parity with the HTTP server; WORDLE_PORT wins.
	if v := envInt("PORT"); v > 0 {
		cfg.Port = v
	}
	if v := envInt("WORDLE_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := envInt("WORDLE_MAX_ATTEMPTS"); v > 0 {
		cfg.MaxAttempts = v
	}
	if v := os.Getenv("WORDS_ANSWERS_FILE"); v != "" {
		cfg.AnswersPath = v
	}
	if v := os.Getenv("WORDS_ALLOWED_FILE"); v != "" {
		cfg.GuessesPath = v
	}
	if v, ok := envDuration("WORDLE_IDLE_TIMEOUT"); ok {
		cfg.IdleTimeout = v
	}
	if v, ok := envDuration("WORDLE_SHUTDOWN_GRACE"); ok {
		cfg.ShutdownGrace = v
	}
	if v := os.Getenv("WORDLE_ADMIN_ADDR"); v != "" {
		cfg.AdminAddr = v
	}
	if v := os.Getenv("WORDLE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

// BindFlags registers every setting on fs, using the current values of cfg
// as defaults.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Listen host")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Listen port")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Guesses allowed per session")
	fs.StringVar(&cfg.AnswersPath, "answers", cfg.AnswersPath, "Answers word list file")
	fs.StringVar(&cfg.GuessesPath, "guesses", cfg.GuessesPath, "Valid guesses word list file")
	fs.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "Close sessions idle for this long (0 = never)")
	fs.DurationVar(&cfg.ShutdownGrace, "shutdown-grace", cfg.ShutdownGrace, "Wait this long for sessions on shutdown")
	fs.StringVar(&cfg.AdminAddr, "admin-addr", cfg.AdminAddr, "Admin HTTP listen address (empty = disabled)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite session journal path (empty = disabled)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format ("json" or "console")`)
}

// Load builds a validated Config from defaults, environment and args.
func Load(args []string) (*Config, error) {
	cfg := Default()
	LoadFromEnv(cfg)

	fs := flag.NewFlagSet("wordle-server", flag.ContinueOnError)
	BindFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// envDuration accepts Go duration strings ("30s") or bare seconds ("30").
func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}
