// internal/protocol/protocol.go
//
// Wire codec for the TCP game protocol.
//
// Framing: one JSON object per message, written back to back on the stream.
// The server reads with a streaming JSON decoder (so whitespace or newlines
// between objects are tolerated) and terminates every response with "\n".
//
//	client → server  {"guess":"crane"}
//	server → client  {"valid":true,"timestamp":"…","feedback":[…],"attempts":1,
//	                  "gameOver":true,"won":true,"message":"…"}
//
// Rejections carry valid=false and a message; they omit feedback, attempts,
// gameOver and won.

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/game"
)

// ErrMalformedRequest marks bytes that are not a well-formed guess request.
var ErrMalformedRequest = errors.New("malformed request")

// MaxRequestBytes caps how much a single Decode may read from the stream.
const MaxRequestBytes = 4 << 10

// Request is the client → server message.
type Request struct {
	Guess *string `json:"guess"`
}

// Response is the server → client message.
type Response struct {
	Valid     bool                `json:"valid"`
	Message   string              `json:"message,omitempty"`
	Timestamp string              `json:"timestamp"`
	Feedback  game.LetterFeedback `json:"feedback,omitempty"`
	Attempts  int                 `json:"attempts,omitempty"`
	GameOver  bool                `json:"gameOver,omitempty"`
	Won       *bool               `json:"won,omitempty"`
}

// User-facing messages.
const (
	InvalidGuessMessage = "Invalid guess. Please enter a valid 5-letter word."
	winFormat           = "Congratulations! You won in %d attempts!"
	lossFormat          = "Game over. The word was: %s"
)

// now is swapped in tests.
var now = time.Now

func timestamp() string { return now().UTC().Format(time.RFC3339Nano) }

// Rejection builds the response for a guess that failed validation.
func Rejection(message string) Response {
	return Response{Valid: false, Message: message, Timestamp: timestamp()}
}

// Result builds the response for an evaluated guess. Terminal fields are
// filled in only when outcome is WON or LOST.
func Result(fb game.LetterFeedback, attempts int, outcome game.Outcome, answer string) Response {
	r := Response{
		Valid:     true,
		Timestamp: timestamp(),
		Feedback:  fb,
		Attempts:  attempts,
	}
	switch outcome {
	case game.Won:
		won := true
		r.GameOver, r.Won = true, &won
		r.Message = fmt.Sprintf(winFormat, attempts)
	case game.Lost:
		won := false
		r.GameOver, r.Won = true, &won
		r.Message = fmt.Sprintf(lossFormat, answer)
	}
	return r
}

// Decoder reads guess requests from a stream.
type Decoder struct {
	lr  *io.LimitedReader
	dec *json.Decoder
}

// NewDecoder returns a Decoder reading from r, at most MaxRequestBytes per
// request.
func NewDecoder(r io.Reader) *Decoder {
	lr := &io.LimitedReader{R: r, N: MaxRequestBytes}
	return &Decoder{lr: lr, dec: json.NewDecoder(lr)}
}

// Decode reads the next request and returns its guess.
//
// A stream closed cleanly between messages yields io.EOF. Bytes that are not
// a JSON object with a string "guess" field yield an error wrapping
// ErrMalformedRequest, as does a request longer than MaxRequestBytes.
// Any other read failure is returned unchanged.
func (d *Decoder) Decode() (string, error) {
	d.lr.N = MaxRequestBytes
	var req Request
	if err := d.dec.Decode(&req); err != nil {
		if d.lr.N <= 0 && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
			return "", fmt.Errorf("%w: request exceeds %d bytes", ErrMalformedRequest, MaxRequestBytes)
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		var synErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &synErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		return "", err
	}
	if req.Guess == nil {
		return "", fmt.Errorf("%w: missing guess field", ErrMalformedRequest)
	}
	return *req.Guess, nil
}

// Encoder writes responses to a stream.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes resp as a single JSON line.
func (e *Encoder) Encode(resp Response) error {
	return e.enc.Encode(resp)
}
