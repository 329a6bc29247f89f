// Package server implements the TCP game listener and the per-connection
// session handler.
//
// Every accepted connection gets its own goroutine and its own game session;
// handlers share nothing but the read-only dictionary and the session
// registry. Within a connection, guesses are read and answered strictly in
// order.
package server

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/game"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/history"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/session"
)

// Journal receives one result per finished connection.
// *history.Store satisfies it.
type Journal interface {
	Insert(ctx context.Context, r history.Result) error
}

// Options tunes session behavior.
type Options struct {
	MaxAttempts   int           // per-session guess limit
	IdleTimeout   time.Duration // per-guess read deadline; 0 disables
	ShutdownGrace time.Duration // how long Serve waits for live sessions after ctx ends
}

// Server accepts connections and runs one session per connection.
type Server struct {
	dict     game.Dictionary
	registry *session.Registry
	journal  Journal // nil disables journaling
	opts     Options

	wg    sync.WaitGroup
	mu    sync.Mutex            // guards conns
	conns map[net.Conn]struct{} // live connections, for forced close on shutdown
}

// New constructs a Server. journal may be nil.
func New(dict game.Dictionary, registry *session.Registry, journal Journal, opts Options) *Server {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = game.DefaultMaxAttempts
	}
	return &Server{
		dict:     dict,
		registry: registry,
		journal:  journal,
		opts:     opts,
		conns:    make(map[net.Conn]struct{}),
	}
}

// ListenAndServe binds addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &TransportError{Op: "listen", Conn: addr, Err: err}
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln and
// waits up to ShutdownGrace for live sessions before closing them.
// It returns nil after a context-driven shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Info().Str("addr", ln.Addr().String()).Msg("wordle server listening")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if isNetClosedError(err) {
				s.drain()
				return &TransportError{Op: "accept", Conn: ln.Addr().String(), Err: err}
			}
			// transient failure (e.g. EMFILE): back off and keep accepting
			backoff = nextBackoff(backoff)
			log.Error().Err(err).Dur("retryIn", backoff).Msg("accept failed")
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		s.track(conn, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)
			s.newConnHandler(conn).run()
		}()
	}

	log.Info().Int("live", s.registry.Len()).Msg("listener closed, draining sessions")
	s.drain()
	log.Info().Msg("wordle server stopped")
	return nil
}

// drain waits for handlers, force-closing their connections once the grace
// period runs out so blocked reads return.
func (s *Server) drain() {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(s.opts.ShutdownGrace):
	}

	s.mu.Lock()
	n := len(s.conns)
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	if n > 0 {
		log.Warn().Int("sessions", n).Msg("grace period over, closing remaining connections")
	}
	<-done
}

func (s *Server) track(c net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}
