package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/protocol"
)

// TransportError represents a failed network operation on the listener or
// on one connection. It is fatal only for the scope it names.
type TransportError struct {
	Op   string // "listen", "accept", "read", "write"
	Conn string // session ID or listen address
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Conn, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the underlying error was a deadline expiry.
func (e *TransportError) Timeout() bool { return os.IsTimeout(e.Err) }

func isNetClosedError(err error) bool {
	return errors.Is(err, net.ErrClosed)
}

// logSessionEnd records why a connection left the guess loop.
func logSessionEnd(l zerolog.Logger, err error) {
	var te *TransportError
	switch {
	case errors.Is(err, io.EOF):
		l.Info().Msg("client closed connection")
	case errors.Is(err, protocol.ErrMalformedRequest):
		l.Warn().Err(err).Msg("malformed request, dropping connection")
	case errors.As(err, &te) && te.Timeout():
		l.Warn().Str("op", te.Op).Msg("idle timeout")
	case errors.As(err, &te) && isNetClosedError(te.Err):
		l.Info().Str("op", te.Op).Msg("connection closed by server")
	default:
		l.Error().Err(err).Msg("transport error")
	}
}
