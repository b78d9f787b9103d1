// internal/solver/session.go
//
// A solving session: one fixed-length dictionary, one constraint store,
// one live candidate set. Sessions are single-caller by contract —
// simulate many games with one session each, never by sharing one.
//
// The candidate set is recomputed eagerly after each accepted feedback
// (O(|dictionary| × length)) and is always derivable from the
// dictionary plus the constraint store; it is never mutated elsewhere.

package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/krelmy/wordle-solver/internal/feedback"
	"github.com/krelmy/wordle-solver/internal/rank"
)

// Session owns the dictionary reference, constraint store, and
// candidate set for one game.
type Session struct {
	length     int
	dictionary []string
	cons       *constraints
	candidates []string
	ranker     *rank.Ranker
}

// Stats is a read-only snapshot of session progress.
type Stats struct {
	DictionarySize  int            `json:"dictionarySize"`
	CandidateCount  int            `json:"candidateCount"`
	EliminationRate float64        `json:"eliminationRate"`
	Fixed           map[int]string `json:"fixed"`
	Present         []string       `json:"present"`
	Absent          []string       `json:"absent"`
}

// NewSession creates a session over the given dictionary. Words are
// lowercased; entries of the wrong length or with non-alphabetic
// characters are dropped. Order is preserved (first occurrence wins),
// which keeps Candidates deterministic.
func NewSession(wordLength int, dictionary []string) (*Session, error) {
	if wordLength < 1 {
		return nil, fmt.Errorf("%w: word length %d", ErrInvalidInput, wordLength)
	}
	seen := make(map[string]struct{}, len(dictionary))
	words := make([]string, 0, len(dictionary))
	for _, w := range dictionary {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) != wordLength || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	s := &Session{
		length:     wordLength,
		dictionary: words,
		cons:       newConstraints(wordLength),
		ranker:     rank.New(words),
	}
	s.candidates = append([]string(nil), words...)
	return s, nil
}

// WordLength returns the fixed word length for this session.
func (s *Session) WordLength() int { return s.length }

// Dictionary returns the full word domain (not a copy; treat as
// read-only).
func (s *Session) Dictionary() []string { return s.dictionary }

// AddFeedback folds one (guess, feedback) observation into the
// constraint store and recomputes the candidate set.
//
// The whole observation is applied atomically: any validation failure
// returns ErrInvalidInput before the store is touched. If the updated
// constraints leave no candidates, the feedback is still recorded and
// ErrContradiction is returned; Reset clears the session.
func (s *Session) AddFeedback(guess string, fb []feedback.Symbol) error {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != s.length || len(fb) != s.length {
		return fmt.Errorf("%w: guess and feedback must have length %d", ErrInvalidInput, s.length)
	}
	if !isAlpha(guess) {
		return fmt.Errorf("%w: guess must be letters a-z", ErrInvalidInput)
	}
	if err := s.cons.validate(guess, fb); err != nil {
		return fmt.Errorf("%w: feedback conflicts with a pinned position", err)
	}

	s.cons.apply(guess, fb)
	s.recompute()

	if len(s.candidates) == 0 {
		return ErrContradiction
	}
	return nil
}

// Satisfies reports whether word is consistent with all feedback so far.
func (s *Session) Satisfies(word string) bool {
	return s.cons.satisfies(strings.ToLower(word))
}

// Candidates returns the dictionary words still consistent with all
// feedback, in dictionary order.
func (s *Session) Candidates() []string {
	return append([]string(nil), s.candidates...)
}

// BestGuess scores the current candidates under the given strategy and
// returns the recommendation. Before any feedback has been accepted,
// the strategic-first strategy answers from a cached opening analysis
// of the full dictionary.
func (s *Session) BestGuess(strategy rank.Strategy) (string, error) {
	var best string
	var err error
	if strategy == rank.StrategicFirst && s.cons.empty() {
		best, err = s.ranker.FirstGuess()
	} else {
		best, err = s.ranker.Best(strategy, s.candidates)
	}
	if err != nil {
		if errors.Is(err, rank.ErrEmpty) {
			return "", ErrNoCandidates
		}
		return "", err
	}
	return best, nil
}

// BestProbe is BestGuess with the guess pool widened to the full
// dictionary, so a word already ruled out as the answer can still be
// recommended to split the remaining candidates.
func (s *Session) BestProbe(strategy rank.Strategy) (string, error) {
	best, err := s.ranker.BestProbe(strategy, s.candidates)
	if err != nil {
		if errors.Is(err, rank.ErrEmpty) {
			return "", ErrNoCandidates
		}
		return "", err
	}
	return best, nil
}

// Stats returns a snapshot of solving progress. Pure read.
func (s *Session) Stats() Stats {
	rate := 0.0
	if n := len(s.dictionary); n > 0 {
		rate = 1 - float64(len(s.candidates))/float64(n)
	}
	return Stats{
		DictionarySize:  len(s.dictionary),
		CandidateCount:  len(s.candidates),
		EliminationRate: rate,
		Fixed:           s.cons.fixedLetters(),
		Present:         s.cons.presentLetters(),
		Absent:          s.cons.fullyAbsent(),
	}
}

// Reset clears the constraint store and restores the candidate set to
// the full dictionary. The cached opening analysis survives.
func (s *Session) Reset() {
	s.cons.reset()
	s.candidates = append(s.candidates[:0], s.dictionary...)
}

// recompute rebuilds the candidate set from the dictionary. Constraints
// only tighten, so filtering the previous candidate set would be
// equivalent; filtering the dictionary keeps Reset and recompute on one
// code path.
func (s *Session) recompute() {
	out := s.candidates[:0]
	for _, w := range s.dictionary {
		if s.cons.satisfies(w) {
			out = append(out, w)
		}
	}
	s.candidates = out
}

// isAlpha reports whether w is all lowercase ASCII letters.
func isAlpha(w string) bool {
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
