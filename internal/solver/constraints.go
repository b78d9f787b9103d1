// internal/solver/constraints.go
//
// The constraint store and filter engine for a solving session.
// Responsibilities:
//   - Accumulate per-position and per-letter constraints from feedback.
//   - Track occurrence bounds (min/max per letter) so repeated letters
//     are modeled exactly instead of with boolean present/absent sets.
//   - Evaluate a word against everything known so far (Satisfies).
//
// Constraints only ever tighten; the session clears them via reset.

package solver

import (
	"sort"
	"strings"

	"github.com/krelmy/wordle-solver/internal/feedback"
)

// constraints is the accumulated knowledge about the secret word.
type constraints struct {
	length int

	// fixed[i] is the letter pinned at position i by a Correct symbol,
	// or 0 when the position is still open.
	fixed []byte

	// present holds letters known to occur somewhere in the secret.
	present map[byte]struct{}

	// excluded maps a letter to positions it cannot occupy.
	excluded map[byte]map[int]struct{}

	// minCount/maxCount bound the occurrences of a letter in the secret.
	// Unconstrained letters default to [0, length].
	minCount map[byte]int
	maxCount map[byte]int
}

func newConstraints(length int) *constraints {
	return &constraints{
		length:   length,
		fixed:    make([]byte, length),
		present:  make(map[byte]struct{}),
		excluded: make(map[byte]map[int]struct{}),
		minCount: make(map[byte]int),
		maxCount: make(map[byte]int),
	}
}

func (c *constraints) reset() {
	c.fixed = make([]byte, c.length)
	c.present = make(map[byte]struct{})
	c.excluded = make(map[byte]map[int]struct{})
	c.minCount = make(map[byte]int)
	c.maxCount = make(map[byte]int)
}

// validate checks a guess/feedback pair against the store without
// mutating it, so apply never fails halfway through.
func (c *constraints) validate(guess string, fb []feedback.Symbol) error {
	for i, s := range fb {
		if !s.Valid() {
			return ErrInvalidInput
		}
		if s == feedback.Correct {
			if prev := c.fixed[i]; prev != 0 && prev != guess[i] {
				return ErrInvalidInput
			}
		}
	}
	return nil
}

// apply folds one observation into the store. Callers must run validate
// first.
//
// Per position i with letter g = guess[i]:
//   - Correct: pin the position, record presence, raise the letter's
//     minimum to its scored count in this guess.
//   - Present: record presence, exclude this position, raise the
//     minimum likewise.
//   - Absent: cap the letter's maximum at its scored count in this
//     guess. Zero scored occurrences means fully absent; a nonzero
//     count means "no more copies beyond those already scored", which
//     is what a gray repeat of a yellow/green letter encodes.
func (c *constraints) apply(guess string, fb []feedback.Symbol) {
	// Correct/Present occurrences of each letter in this guess.
	var scored [26]int
	for i, s := range fb {
		if s == feedback.Correct || s == feedback.Present {
			scored[guess[i]-'a']++
		}
	}

	for i, s := range fb {
		g := guess[i]
		switch s {
		case feedback.Correct:
			c.fixed[i] = g
			c.present[g] = struct{}{}
			c.raiseMin(g, scored[g-'a'])

		case feedback.Present:
			c.present[g] = struct{}{}
			c.exclude(g, i)
			c.raiseMin(g, scored[g-'a'])

		case feedback.Absent:
			c.capMax(g, scored[g-'a'])
			// An Absent tile also rules this letter out of this
			// position; it would have scored Correct there.
			if scored[g-'a'] > 0 {
				c.exclude(g, i)
			}
		}
	}
}

func (c *constraints) raiseMin(letter byte, n int) {
	if n < 1 {
		n = 1
	}
	if c.minCount[letter] < n {
		c.minCount[letter] = n
	}
}

func (c *constraints) capMax(letter byte, n int) {
	cur, ok := c.maxCount[letter]
	if !ok || n < cur {
		c.maxCount[letter] = n
	}
}

func (c *constraints) exclude(letter byte, pos int) {
	set, ok := c.excluded[letter]
	if !ok {
		set = make(map[int]struct{})
		c.excluded[letter] = set
	}
	set[pos] = struct{}{}
}

// satisfies reports whether word is consistent with everything known.
// O(length) per call.
func (c *constraints) satisfies(word string) bool {
	if len(word) != c.length {
		return false
	}
	for i, l := range c.fixed {
		if l != 0 && word[i] != l {
			return false
		}
	}
	for l := range c.present {
		if strings.IndexByte(word, l) < 0 {
			return false
		}
	}
	for l, positions := range c.excluded {
		for pos := range positions {
			if word[pos] == l {
				return false
			}
		}
	}
	for l, min := range c.minCount {
		if strings.Count(word, string(l)) < min {
			return false
		}
	}
	for l, max := range c.maxCount {
		if strings.Count(word, string(l)) > max {
			return false
		}
	}
	return true
}

// fullyAbsent returns the letters proven to have zero occurrences,
// sorted for deterministic output.
func (c *constraints) fullyAbsent() []string {
	var out []string
	for l, max := range c.maxCount {
		if max == 0 {
			out = append(out, string(l))
		}
	}
	sort.Strings(out)
	return out
}

// presentLetters returns the known-present letters, sorted.
func (c *constraints) presentLetters() []string {
	var out []string
	for l := range c.present {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}

// fixedLetters returns the pinned positions as position → letter.
func (c *constraints) fixedLetters() map[int]string {
	out := make(map[int]string)
	for i, l := range c.fixed {
		if l != 0 {
			out[i] = string(l)
		}
	}
	return out
}

// empty reports whether no feedback has been accumulated yet.
func (c *constraints) empty() bool {
	for _, l := range c.fixed {
		if l != 0 {
			return false
		}
	}
	return len(c.present) == 0 && len(c.excluded) == 0 &&
		len(c.minCount) == 0 && len(c.maxCount) == 0
}
