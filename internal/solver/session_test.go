package solver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/krelmy/wordle-solver/internal/feedback"
	"github.com/krelmy/wordle-solver/internal/rank"
)

func mustSession(t *testing.T, length int, dict []string) *Session {
	t.Helper()
	s, err := NewSession(length, dict)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func mustFeedback(t *testing.T, s *Session, guess, fb string) {
	t.Helper()
	p, err := feedback.Parse(fb)
	if err != nil {
		t.Fatalf("Parse(%q): %v", fb, err)
	}
	if err := s.AddFeedback(guess, p); err != nil {
		t.Fatalf("AddFeedback(%q, %q): %v", guess, fb, err)
	}
}

func TestNewSessionNormalizes(t *testing.T) {
	s := mustSession(t, 5, []string{"House", " mouse ", "cat", "h0use", "house", "horse"})
	want := []string{"house", "mouse", "horse"}
	if got := s.Candidates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestAroseFiltering(t *testing.T) {
	s := mustSession(t, 5, []string{"house", "mouse", "horse", "louse", "crane", "troop"})
	mustFeedback(t, s, "arose", "XXYGG")

	// a and r are gone entirely (horse keeps its o and "se" ending but
	// carries an r), o must appear away from position 2, and "se" is
	// pinned at the tail.
	want := []string{"house", "mouse", "louse"}
	if got := s.Candidates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestRoundTripLeavesSecret(t *testing.T) {
	dict := []string{"house", "mouse", "horse", "louse"}
	for _, secret := range dict {
		s := mustSession(t, 5, dict)
		if err := s.AddFeedback(secret, feedback.Pattern(secret, secret)); err != nil {
			t.Fatalf("AddFeedback(%q, self-pattern): %v", secret, err)
		}
		if got := s.Candidates(); !reflect.DeepEqual(got, []string{secret}) {
			t.Errorf("after all-correct feedback for %q: candidates %v", secret, got)
		}
	}
}

func TestCandidatesMonotonicAndIdempotent(t *testing.T) {
	s := mustSession(t, 5, []string{"house", "mouse", "horse", "louse", "crane", "slate", "troop"})
	secret := "mouse"

	prev := len(s.Candidates())
	for _, guess := range []string{"crane", "slate", "house"} {
		if !reflect.DeepEqual(s.Candidates(), s.Candidates()) {
			t.Fatal("Candidates() not idempotent")
		}
		if err := s.AddFeedback(guess, feedback.Pattern(guess, secret)); err != nil {
			t.Fatalf("AddFeedback(%q): %v", guess, err)
		}
		n := len(s.Candidates())
		if n > prev {
			t.Errorf("candidate count grew after %q: %d -> %d", guess, prev, n)
		}
		prev = n
	}
	if !s.Satisfies(secret) {
		t.Error("true secret filtered out by its own feedback")
	}
}

func TestDuplicateLetterBounds(t *testing.T) {
	// Pattern(sassy, goose) = XXXGX: one s scores (green), the other
	// two come back gray, so the secret has exactly one s.
	s := mustSession(t, 5, []string{"goose", "sassy", "gloss", "moosy", "mossy"})
	mustFeedback(t, s, "sassy", "XXXGX")

	got := s.Candidates()
	if !reflect.DeepEqual(got, []string{"goose"}) {
		t.Errorf("Candidates() = %v, want [goose]", got)
	}

	st := s.Stats()
	if !reflect.DeepEqual(st.Absent, []string{"a", "y"}) {
		t.Errorf("Stats().Absent = %v, want [a y]", st.Absent)
	}
	if !reflect.DeepEqual(st.Present, []string{"s"}) {
		t.Errorf("Stats().Present = %v, want [s]", st.Present)
	}
	if st.Fixed[3] != "s" {
		t.Errorf("Stats().Fixed = %v, want s at 3", st.Fixed)
	}
}

func TestContradictionAndNoCandidates(t *testing.T) {
	s := mustSession(t, 5, []string{"house", "mouse"})

	p, _ := feedback.Parse("GXXXX")
	err := s.AddFeedback("house", p)
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("AddFeedback = %v, want ErrContradiction", err)
	}
	if n := len(s.Candidates()); n != 0 {
		t.Fatalf("expected empty candidate set, got %d", n)
	}

	for _, strat := range []rank.Strategy{rank.MaxInfo, rank.Minimax, rank.Frequency, rank.Random} {
		if _, err := s.BestGuess(strat); !errors.Is(err, ErrNoCandidates) {
			t.Errorf("BestGuess(%s) = %v, want ErrNoCandidates", strat, err)
		}
	}

	s.Reset()
	if n := len(s.Candidates()); n != 2 {
		t.Errorf("after Reset: %d candidates, want 2", n)
	}
}

func TestInvalidInputLeavesStateUntouched(t *testing.T) {
	s := mustSession(t, 5, []string{"house", "mouse", "horse"})
	mustFeedback(t, s, "house", "GGXGG") // u absent, rest pinned: horse remains

	before := s.Candidates()
	if !reflect.DeepEqual(before, []string{"horse"}) {
		t.Fatalf("setup: candidates %v", before)
	}

	// Length mismatch.
	p, _ := feedback.Parse("GG")
	if err := s.AddFeedback("mouse", p); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short feedback: %v, want ErrInvalidInput", err)
	}
	// Correct symbol that contradicts the pinned h at position 0.
	p, _ = feedback.Parse("GXXXX")
	if err := s.AddFeedback("mouse", p); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("conflicting fixed letter: %v, want ErrInvalidInput", err)
	}
	// Non-alphabetic guess.
	p, _ = feedback.Parse("XXXXX")
	if err := s.AddFeedback("h0use", p); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("non-alpha guess: %v, want ErrInvalidInput", err)
	}

	if got := s.Candidates(); !reflect.DeepEqual(got, before) {
		t.Errorf("state changed on invalid input: %v -> %v", before, got)
	}
}

func TestBestGuessSingleCandidateShortCircuits(t *testing.T) {
	s := mustSession(t, 5, []string{"house", "mouse"})
	mustFeedback(t, s, "house", "XGGGG") // h fully absent: mouse only

	for _, strat := range []rank.Strategy{rank.MaxInfo, rank.Minimax, rank.Frequency, rank.Random} {
		got, err := s.BestGuess(strat)
		if err != nil || got != "mouse" {
			t.Errorf("BestGuess(%s) = %q, %v; want mouse", strat, got, err)
		}
	}
}

func TestStrategicFirstUsesCachedOpening(t *testing.T) {
	s := mustSession(t, 5, []string{"slate", "house", "mouse"})
	got, err := s.BestGuess(rank.StrategicFirst)
	if err != nil {
		t.Fatalf("BestGuess: %v", err)
	}
	if got != "slate" {
		t.Errorf("opening guess = %q, want slate (known opener in domain)", got)
	}

	// After feedback the strategy scores the live candidates instead.
	mustFeedback(t, s, "slate", feedback.Encode(feedback.Pattern("slate", "mouse")))
	got, err = s.BestGuess(rank.StrategicFirst)
	if err != nil {
		t.Fatalf("BestGuess after feedback: %v", err)
	}
	if got == "slate" {
		t.Error("opening word recommended again after it was ruled out")
	}
}

func TestStatsSnapshot(t *testing.T) {
	s := mustSession(t, 5, []string{"house", "mouse", "horse", "crane"})
	st := s.Stats()
	if st.DictionarySize != 4 || st.CandidateCount != 4 || st.EliminationRate != 0 {
		t.Fatalf("fresh stats: %+v", st)
	}

	// Pattern(crane, mouse): only the trailing e survives.
	mustFeedback(t, s, "crane", "XXXXG")
	st = s.Stats()
	if st.CandidateCount != 2 {
		t.Errorf("CandidateCount = %d, want 2 (house, mouse)", st.CandidateCount)
	}
	if want := 0.5; st.EliminationRate != want {
		t.Errorf("EliminationRate = %f, want %f", st.EliminationRate, want)
	}
	if len(st.Absent) != 4 {
		t.Errorf("Absent = %v, want c/r/a/n", st.Absent)
	}
	if st.Fixed[4] != "e" {
		t.Errorf("Fixed = %v, want e at 4", st.Fixed)
	}
}

func TestReset(t *testing.T) {
	dict := []string{"house", "mouse", "horse"}
	s := mustSession(t, 5, dict)
	mustFeedback(t, s, "house", "GGGGG")
	s.Reset()
	if got := s.Candidates(); !reflect.DeepEqual(got, dict) {
		t.Errorf("after Reset: %v, want %v", got, dict)
	}
	st := s.Stats()
	if len(st.Fixed) != 0 || len(st.Present) != 0 || len(st.Absent) != 0 {
		t.Errorf("constraints survived Reset: %+v", st)
	}
}
