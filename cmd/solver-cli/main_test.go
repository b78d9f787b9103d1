package main

import (
	"strings"
	"testing"

	"github.com/krelmy/wordle-solver/internal/feedback"
	"github.com/krelmy/wordle-solver/internal/rank"
)

// A guess shorter than the relayed feedback must be rejected before
// rendering; board indexes the guess once per feedback cell.
func TestTranscriptValid(t *testing.T) {
	fb, err := feedback.Parse("XXYGG")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name  string
		guess string
		want  bool
	}{
		{"matching", "crane", true},
		{"short guess", "cat", false},
		{"long guess", "cranes", false},
		{"empty guess", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transcriptValid(tc.guess, fb, 5); got != tc.want {
				t.Errorf("transcriptValid(%q, XXYGG, 5) = %v, want %v", tc.guess, got, tc.want)
			}
		})
	}

	short, _ := feedback.Parse("GG")
	if transcriptValid("house", short, 5) {
		t.Error("short feedback accepted")
	}
}

func TestBoardRendersOneCellPerLetter(t *testing.T) {
	row := board("crane", feedback.Pattern("crane", "crate"))
	for _, letter := range []string{"C", "R", "A", "N", "E"} {
		if !strings.Contains(row, " "+letter+" ") {
			t.Errorf("board row missing cell for %s: %q", letter, row)
		}
	}
}

func TestSolveSelfPlay(t *testing.T) {
	domain := []string{"house", "mouse", "horse", "louse", "crane"}
	for _, secret := range domain {
		attempts, guesses := solve(domain, 5, rank.MaxInfo, secret)
		if attempts < 1 || attempts > maxAttempts {
			t.Errorf("solve(%q) = %d attempts, guesses %v", secret, attempts, guesses)
			continue
		}
		if guesses[len(guesses)-1] != secret {
			t.Errorf("solve(%q) final guess %q", secret, guesses[len(guesses)-1])
		}
	}
}
