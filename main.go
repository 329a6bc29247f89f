package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/config"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/history"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/httpserver"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/server"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/session"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/words"
)

// StartupError reports a failure before the server began accepting
// connections.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string { return fmt.Sprintf("startup: %s: %v", e.Stage, e.Err) }
func (e *StartupError) Unwrap() error { return e.Err }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server exited")
		stop()
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	dict, err := words.Load(cfg.AnswersPath, cfg.GuessesPath)
	if err != nil {
		return &StartupError{Stage: "load word lists", Err: err}
	}
	answers, guesses := dict.Stats()
	log.Info().Int("answers", answers).Int("guesses", guesses).Msg("word lists loaded")

	// Keep the interfaces nil (not a nil *Store) when the journal is off.
	var (
		journal server.Journal
		results httpserver.ResultLister
	)
	if cfg.DBPath != "" {
		store, err := history.Open(cfg.DBPath)
		if err != nil {
			return &StartupError{Stage: "open journal", Err: err}
		}
		defer store.Close()
		journal, results = store, store
		log.Info().Str("path", cfg.DBPath).Msg("session journal enabled")
	}

	registry := session.NewRegistry()
	srv := server.New(dict, registry, journal, server.Options{
		MaxAttempts:   cfg.MaxAttempts,
		IdleTimeout:   cfg.IdleTimeout,
		ShutdownGrace: cfg.ShutdownGrace,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe(gctx, cfg.Addr())
		var te *server.TransportError
		if errors.As(err, &te) && te.Op == "listen" {
			return &StartupError{Stage: "bind", Err: err}
		}
		return err
	})
	if cfg.AdminAddr != "" {
		admin := httpserver.New(registry, dict, results)
		g.Go(func() error { return admin.ListenAndServe(gctx, cfg.AdminAddr) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}
