// internal/feedback/feedback.go
//
// Feedback symbols and the pattern generator.
// Defines:
//   - Symbol: per-letter result of comparing a guess to a secret
//     (Correct/Present/Absent).
//   - Pattern: the classic two-pass scoring algorithm, the shared
//     primitive behind filtering, ranking, and self-play simulation.
//
// Notes:
//   - Words are assumed lowercase a–z; the words package normalizes input.
//   - The compact G/Y/X text form used by the CLI and HTTP API is parsed
//     and rendered here so both surfaces agree on it.

package feedback

import (
	"fmt"
	"strings"
)

// Symbol is the evaluation result for a single letter of a guess.
type Symbol uint8

const (
	// Absent: the letter has no unmatched occurrence left in the secret.
	Absent Symbol = iota
	// Present: the letter occurs in the secret, at a different position.
	Present
	// Correct: right letter, right position.
	Correct
)

// String returns the single-character code used in transcripts: G/Y/X.
func (s Symbol) String() string {
	switch s {
	case Correct:
		return "G"
	case Present:
		return "Y"
	default:
		return "X"
	}
}

// Valid reports whether s is one of the three defined symbols.
func (s Symbol) Valid() bool { return s <= Correct }

// Pattern computes the feedback that guess would receive if secret were
// the answer. Pure and deterministic.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) secret letters by letter index.
//
// Pass 2:
//   - For each unresolved guess letter, left to right: if there is
//     remaining count for that letter, mark Present and decrement the
//     count; otherwise mark Absent.
//
// Each secret occurrence is consumed at most once, which is what makes
// repeated letters come out right ("sanes" vs "snail" scores exactly one
// s, not two). Testing membership per position instead of consuming
// counts is the classic way to get this wrong.
func Pattern(guess, secret string) []Symbol {
	n := len(guess)
	res := make([]Symbol, n)

	// Letter frequency for the non-correct positions (a–z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
		} else {
			counts[idx(secret[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = Present
			counts[j]--
		}
		// zero value is Absent
	}
	return res
}

// Key packs a pattern into a base-3 integer, for use as a partition map
// key when ranking guesses.
func Key(p []Symbol) int {
	k := 0
	for _, s := range p {
		k = k*3 + int(s)
	}
	return k
}

// AllCorrect reports whether every symbol in p is Correct.
func AllCorrect(p []Symbol) bool {
	for _, s := range p {
		if s != Correct {
			return false
		}
	}
	return len(p) > 0
}

// Encode renders a pattern as its compact text form, e.g. "XXYGG".
func Encode(p []Symbol) string {
	var b strings.Builder
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

// Parse converts a compact text form back into symbols. Accepts upper
// or lower case G/Y/X; anything else is an error.
func Parse(s string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'G':
			out = append(out, Correct)
		case 'Y':
			out = append(out, Present)
		case 'X':
			out = append(out, Absent)
		default:
			return nil, fmt.Errorf("feedback: unrecognized symbol %q (want G, Y, or X)", r)
		}
	}
	return out, nil
}

// idx maps a lowercase ASCII letter byte to 0..25.
func idx(b byte) int { return int(b - 'a') }
