// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - LetterState: per-letter result of a guess (HIT/PRESENT/MISS).
//   - LetterFeedback: ordered per-letter scoring of one guess.
//   - Outcome: lifecycle of a session (IN_PROGRESS → WON | LOST).
//   - Session: state for a single connection's game.

package game

import (
	"errors"
	"time"
)

// DefaultMaxAttempts is the attempt limit used when none is configured.
const DefaultMaxAttempts = 6

// LetterState represents the evaluation result for a single letter in a guess.
//   - HIT:     letter is correct and in the correct position.
//   - PRESENT: letter occurs somewhere in the answer.
//   - MISS:    letter does not occur in the answer at all.
type LetterState string

const (
	Hit     LetterState = "HIT"
	Present LetterState = "PRESENT"
	Miss    LetterState = "MISS"
)

// LetterScore is one entry of a LetterFeedback.
type LetterScore struct {
	Letter string      `json:"letter"`
	State  LetterState `json:"state"`
}

// LetterFeedback holds exactly one LetterScore per guess letter, in order.
type LetterFeedback []LetterScore

// Outcome is the session lifecycle state. Once WON or LOST it never changes.
type Outcome string

const (
	InProgress Outcome = "IN_PROGRESS"
	Won        Outcome = "WON"
	Lost       Outcome = "LOST"
)

// Terminal reports whether o ends the session.
func (o Outcome) Terminal() bool { return o == Won || o == Lost }

var (
	// ErrInvalidGuess marks a guess of the wrong length or outside the guess set.
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrGameOver is returned by Evaluate once the session has a terminal outcome.
	ErrGameOver = errors.New("game finished")
)

// Session holds the state of a single Wordle game.
// It is owned by exactly one connection handler and is not safe for
// concurrent use.
type Session struct {
	answer      string    // secret word, lowercase, immutable
	attempts    int       // accepted guesses so far
	maxAttempts int       // attempt limit, immutable
	outcome     Outcome   // IN_PROGRESS until won or lost
	startedAt   time.Time // informational
	guesses     Dictionary
}
