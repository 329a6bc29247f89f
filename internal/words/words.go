// internal/words/words.go
//
// Dictionary of valid guesses and candidate answers.
//
// Responsibilities:
//   - Hold two immutable, lowercase word sets: guesses and answers.
//   - Load them from configured files or fall back to the embedded assets.
//   - Supply RandomAnswer (uniform, crypto/rand) and IsGuess lookups.
//
// Loading behavior (Load):
//   1. answers and guesses paths both set → read each file.
//   2. only the guesses path set → that file serves as both lists.
//   3. neither set → embedded assets/answers.txt and assets/allowed.txt.
//
// In every case answers are folded into the guess set so that the secret
// word is always a legal guess.
//
// A Dictionary is never mutated after construction and is safe for
// concurrent readers without locking.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/tcp-server/assets"
)

// WordLength is the number of letters in every guess and answer.
const WordLength = 5

// ErrNoAnswers is returned when the answers list is empty after filtering.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Dictionary holds the valid guess set and the candidate answer list.
type Dictionary struct {
	answers []string
	guesses map[string]struct{}
}

// New builds a Dictionary from raw word lists. Entries are lowercased and
// anything that is not a 5-letter a–z word is dropped. The guess set holds
// exactly the supplied guesses; use Load for the answers ∪ guesses policy.
func New(guesses, answers []string) (*Dictionary, error) {
	ans := normalize(answers)
	if len(ans) == 0 {
		return nil, ErrNoAnswers
	}
	return &Dictionary{answers: ans, guesses: toSet(normalize(guesses))}, nil
}

// Load reads the word lists following the precedence documented above.
func Load(answersPath, guessesPath string) (*Dictionary, error) {
	var ansList, guessList []string
	var err error

	switch {
	case answersPath != "" && guessesPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if guessList, err = readWordFile(guessesPath); err != nil {
			return nil, err
		}

	case answersPath == "" && guessesPath != "":
		if guessList, err = readWordFile(guessesPath); err != nil {
			return nil, err
		}
		ansList = guessList

	case answersPath != "" && guessesPath == "":
		return nil, errors.New("words: answers file given without a guesses file")

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if guessList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("words: embedded guesses: %w", err)
		}
	}

	all := make([]string, 0, len(ansList)+len(guessList))
	all = append(all, ansList...)
	all = append(all, guessList...)
	return New(all, ansList)
}

// readWordFile loads one word per line from path.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	list, err := assets.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return list, nil
}

// normalize lowercases, trims and keeps only valid 5-letter alphabetic words.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) == WordLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a uniformly chosen answer.
func (d *Dictionary) RandomAnswer() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.answers))))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("words: random answer: %v", err))
	}
	return d.answers[n.Int64()]
}

// IsGuess reports whether w (any case) is in the guess set.
func (d *Dictionary) IsGuess(w string) bool {
	_, ok := d.guesses[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w (any case) is a candidate answer.
func (d *Dictionary) IsAnswer(w string) bool {
	lw := strings.ToLower(w)
	for _, a := range d.answers {
		if a == lw {
			return true
		}
	}
	return false
}

// Stats returns counts of loaded words: (answers, guesses).
func (d *Dictionary) Stats() (answersCount int, guessesCount int) {
	return len(d.answers), len(d.guesses)
}
