package server

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/game"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/history"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/protocol"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/session"
)

// journalTimeout bounds the result insert made when a connection ends.
const journalTimeout = 3 * time.Second

// connHandler binds one connection to one game session for its lifetime.
// It runs on its own goroutine and is the only code touching sess.
type connHandler struct {
	srv    *Server
	conn   net.Conn
	id     string
	remote string
	sess   *game.Session
	dec    *protocol.Decoder
	enc    *protocol.Encoder
	log    zerolog.Logger
}

func (s *Server) newConnHandler(conn net.Conn) *connHandler {
	id := uuid.NewString()
	remote := conn.RemoteAddr().String()
	return &connHandler{
		srv:    s,
		conn:   conn,
		id:     id,
		remote: remote,
		sess:   game.New(s.dict, s.opts.MaxAttempts),
		dec:    protocol.NewDecoder(conn),
		enc:    protocol.NewEncoder(conn),
		log:    log.With().Str("conn", id).Str("remote", remote).Logger(),
	}
}

// run drives the session: ACCEPTED → AWAITING_GUESS (loop) → TERMINATED.
func (h *connHandler) run() {
	h.srv.registry.Register(h.entry())
	h.log.Info().Int("maxAttempts", h.sess.MaxAttempts()).Msg("connection accepted")
	defer h.terminate()

	for !h.sess.Outcome().Terminal() {
		if err := h.step(); err != nil {
			logSessionEnd(h.log, err)
			return
		}
	}
}

// step waits for one request and answers it.
func (h *connHandler) step() error {
	h.deadline(h.conn.SetReadDeadline)
	guess, err := h.dec.Decode()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, protocol.ErrMalformedRequest) {
			return err
		}
		return &TransportError{Op: "read", Conn: h.id, Err: err}
	}

	if !h.sess.IsValidGuess(guess) {
		h.log.Debug().Str("guess", guess).Msg("guess rejected")
		return h.send(protocol.Rejection(protocol.InvalidGuessMessage))
	}

	fb, terminal, err := h.sess.Evaluate(guess)
	if err != nil {
		return err
	}
	_ = h.srv.registry.Update(h.entry())

	h.log.Debug().Str("guess", guess).Int("attempts", h.sess.Attempts()).Msg("guess evaluated")
	if terminal {
		h.log.Info().
			Str("outcome", string(h.sess.Outcome())).
			Int("attempts", h.sess.Attempts()).
			Msg("game over")
	}
	return h.send(protocol.Result(fb, h.sess.Attempts(), h.sess.Outcome(), h.sess.Answer()))
}

func (h *connHandler) send(resp protocol.Response) error {
	h.deadline(h.conn.SetWriteDeadline)
	if err := h.enc.Encode(resp); err != nil {
		return &TransportError{Op: "write", Conn: h.id, Err: err}
	}
	return nil
}

// deadline arms a read or write deadline when an idle timeout is configured.
func (h *connHandler) deadline(set func(time.Time) error) {
	if h.srv.opts.IdleTimeout > 0 {
		_ = set(time.Now().Add(h.srv.opts.IdleTimeout))
	}
}

// terminate releases the connection and the registry entry and journals
// the result. It runs exactly once per connection, whatever ended it.
func (h *connHandler) terminate() {
	h.srv.registry.Deregister(h.id)
	if err := h.conn.Close(); err != nil && !isNetClosedError(err) {
		h.log.Warn().Err(err).Msg("error while closing connection")
	}
	h.record()
	h.log.Info().
		Str("outcome", string(h.sess.Outcome())).
		Int("attempts", h.sess.Attempts()).
		Dur("duration", time.Since(h.sess.StartedAt())).
		Msg("connection closed")
}

func (h *connHandler) record() {
	if h.srv.journal == nil {
		return
	}
	outcome := history.OutcomeAbandoned
	switch h.sess.Outcome() {
	case game.Won:
		outcome = history.OutcomeWon
	case game.Lost:
		outcome = history.OutcomeLost
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	err := h.srv.journal.Insert(ctx, history.Result{
		SessionID:  h.id,
		Remote:     h.remote,
		Answer:     h.sess.Answer(),
		Attempts:   h.sess.Attempts(),
		Outcome:    outcome,
		StartedAt:  h.sess.StartedAt(),
		FinishedAt: time.Now(),
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("journal insert failed")
	}
}

func (h *connHandler) entry() session.Entry {
	return session.EntryFor(h.id, h.remote, h.sess)
}
