// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create sessions with a uniformly random answer and an attempt limit.
//   - Validate guesses (length 5, member of the guess set, any case).
//   - Score guesses with the per-position membership rule.
//   - Track state transitions: IN_PROGRESS → WON / LOST.
//
// Scoring note: PRESENT is a plain membership test against the whole answer.
// There is no duplicate-letter accounting, so a letter already matched by a
// HIT can still mark a later occurrence PRESENT. This is the established
// game rule and is kept as-is.

package game

import (
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/words"
)

// Dictionary is the subset of the word lists a Session needs.
// *words.Dictionary satisfies it.
type Dictionary interface {
	IsGuess(w string) bool
	RandomAnswer() string
}

// New constructs a session with a random answer from dict.
// A maxAttempts below 1 falls back to DefaultMaxAttempts.
func New(dict Dictionary, maxAttempts int) *Session {
	return NewWithAnswer(dict, dict.RandomAnswer(), maxAttempts)
}

// NewWithAnswer constructs a session with a fixed answer (testing, replays).
func NewWithAnswer(dict Dictionary, answer string, maxAttempts int) *Session {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Session{
		answer:      strings.ToLower(answer),
		maxAttempts: maxAttempts,
		outcome:     InProgress,
		startedAt:   time.Now(),
		guesses:     dict,
	}
}

// Answer returns the secret word.
func (s *Session) Answer() string { return s.answer }

// Attempts returns the number of accepted guesses.
func (s *Session) Attempts() int { return s.attempts }

// MaxAttempts returns the attempt limit.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// Outcome returns the current lifecycle state.
func (s *Session) Outcome() Outcome { return s.outcome }

// StartedAt returns the creation time.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// IsValidGuess reports whether the lowercase form of word has length 5 and
// is in the guess set.
func (s *Session) IsValidGuess(word string) bool {
	lw := strings.ToLower(word)
	return len(lw) == words.WordLength && s.guesses.IsGuess(lw)
}

// Evaluate scores word against the answer and advances the session.
//
// Returns ErrGameOver if the session already ended and ErrInvalidGuess if
// word fails IsValidGuess; neither touches the attempt counter.
// On success the second return value reports whether the session is now
// terminal.
func (s *Session) Evaluate(word string) (LetterFeedback, bool, error) {
	if s.outcome.Terminal() {
		return nil, true, ErrGameOver
	}
	if !s.IsValidGuess(word) {
		return nil, false, ErrInvalidGuess
	}

	guess := strings.ToLower(word)
	fb := score(s.answer, guess)
	s.attempts++

	switch {
	case guess == s.answer:
		s.outcome = Won
	case s.attempts >= s.maxAttempts:
		s.outcome = Lost
	}
	return fb, s.outcome.Terminal(), nil
}

// score applies the per-position rule: HIT on an exact match, else PRESENT
// if the letter appears anywhere in answer, else MISS.
// guess and answer must have equal length.
func score(answer, guess string) LetterFeedback {
	fb := make(LetterFeedback, len(guess))
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		st := Miss
		switch {
		case c == answer[i]:
			st = Hit
		case strings.IndexByte(answer, c) >= 0:
			st = Present
		}
		fb[i] = LetterScore{Letter: string(c), State: st}
	}
	return fb
}
