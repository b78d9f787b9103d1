// cmd/solver-cli/main.go
//
// Interactive front end for the solver.
// Modes:
//   - assistant: suggests guesses; the user relays the G/Y/X feedback
//     from wherever they are playing.
//   - auto: given a secret word, the solver plays against itself using
//     the pattern generator as the feedback source.
//   - benchmark: solves every dictionary word with the chosen strategy
//     and reports the attempt distribution.
//
// Feedback encoding: G = correct, Y = present, X = absent ("XXYGG").

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"

	"github.com/krelmy/wordle-solver/internal/feedback"
	"github.com/krelmy/wordle-solver/internal/rank"
	"github.com/krelmy/wordle-solver/internal/solver"
	"github.com/krelmy/wordle-solver/internal/words"
)

const maxAttempts = 6

func main() {
	var (
		mode     = flag.String("mode", "assistant", "assistant | auto | benchmark")
		language = flag.String("lang", words.English, "dictionary language (english, french)")
		length   = flag.Int("length", 5, "word length")
		strategy = flag.String("strategy", rank.MaxInfo.String(), "ranking strategy")
		secret   = flag.String("secret", "", "secret word for auto mode")
	)
	flag.Parse()

	strat, err := rank.ParseStrategy(*strategy)
	if err != nil {
		fatalf("unknown strategy %q", *strategy)
	}
	domain, err := words.Load(*language, *length)
	if err != nil {
		fatalf("load dictionary: %v", err)
	}

	switch *mode {
	case "assistant":
		runAssistant(domain, *length, strat)
	case "auto":
		if *secret == "" {
			fatalf("auto mode needs -secret")
		}
		runAuto(domain, *length, strat, strings.ToLower(*secret))
	case "benchmark":
		runBenchmark(domain, *length, strat)
	default:
		fatalf("unknown mode %q", *mode)
	}
}

// runAssistant drives the solve from the user's feedback transcripts.
func runAssistant(domain []string, length int, strat rank.Strategy) {
	sess, err := solver.NewSession(length, domain)
	if err != nil {
		fatalf("new session: %v", err)
	}

	colorstring.Println("[bold]solver assistant[reset] — feedback as G/Y/X, 'quit' to exit")
	in := bufio.NewScanner(os.Stdin)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		suggestion, err := sess.BestGuess(pickStrategy(strat, attempt))
		if err != nil {
			colorstring.Println("[red]no candidates left — check the feedback for a typo, or type 'reset'")
			if !prompt(in, "press enter to reset, or 'quit': ") {
				return
			}
			sess.Reset()
			attempt = 0
			continue
		}

		colorstring.Printf("[bold]attempt %d/%d[reset]  suggestion: [green]%s[reset]\n",
			attempt, maxAttempts, strings.ToUpper(suggestion))

		fmt.Printf("word you guessed (enter = %s): ", suggestion)
		if !in.Scan() {
			return
		}
		guess := strings.TrimSpace(strings.ToLower(in.Text()))
		if guess == "quit" {
			return
		}
		if guess == "" {
			guess = suggestion
		}

		fmt.Print("feedback (e.g. XXYGG): ")
		if !in.Scan() {
			return
		}
		raw := strings.TrimSpace(in.Text())
		if raw == "quit" {
			return
		}
		fb, err := feedback.Parse(raw)
		if err != nil {
			colorstring.Println("[red]invalid feedback — use G, Y, or X")
			attempt--
			continue
		}
		if !transcriptValid(guess, fb, length) {
			colorstring.Printf("[red]guess and feedback must both be %d letters\n", length)
			attempt--
			continue
		}

		fmt.Println(board(guess, fb))
		if feedback.AllCorrect(fb) {
			colorstring.Printf("[green][bold]solved in %d attempts!\n", attempt)
			return
		}

		if err := sess.AddFeedback(guess, fb); err != nil {
			switch {
			case errors.Is(err, solver.ErrContradiction):
				colorstring.Println("[red]that feedback contradicts earlier rounds")
			default:
				colorstring.Printf("[red]%v\n", err)
				attempt--
				continue
			}
		}
		printStats(sess)
	}
	colorstring.Println("[red]out of attempts")
}

// runAuto lets the solver play itself against a known secret.
func runAuto(domain []string, length int, strat rank.Strategy, secret string) {
	if len(secret) != length {
		fatalf("secret must be %d letters", length)
	}
	attempts, guesses := solve(domain, length, strat, secret)
	for _, g := range guesses {
		fmt.Println(board(g, feedback.Pattern(g, secret)))
	}
	if attempts > 0 {
		colorstring.Printf("[green][bold]solved %s in %d attempts\n", strings.ToUpper(secret), attempts)
	} else {
		colorstring.Printf("[red]failed to solve %s in %d attempts\n", strings.ToUpper(secret), maxAttempts)
	}
}

// runBenchmark solves every dictionary word and reports the attempt
// distribution.
func runBenchmark(domain []string, length int, strat rank.Strategy) {
	fmt.Printf("benchmarking %s over %d words\n", strat, len(domain))
	bar := progressbar.Default(int64(len(domain)))

	var dist [maxAttempts + 1]int
	failed := 0
	total := 0

	for _, secret := range domain {
		attempts, _ := solve(domain, length, strat, secret)
		if attempts == 0 {
			failed++
		} else {
			dist[attempts]++
			total += attempts
		}
		_ = bar.Add(1)
	}

	solved := len(domain) - failed
	fmt.Printf("\nsolved %d/%d", solved, len(domain))
	if solved > 0 {
		fmt.Printf(", avg %.2f attempts", float64(total)/float64(solved))
	}
	fmt.Println()
	for n := 1; n <= maxAttempts; n++ {
		fmt.Printf("  %d: %s %d\n", n, strings.Repeat("#", scaled(dist[n], len(domain))), dist[n])
	}
	if failed > 0 {
		fmt.Printf("  X: %d\n", failed)
	}
}

// solve runs one self-play game; returns (attempts, guesses), with
// attempts 0 on failure.
func solve(domain []string, length int, strat rank.Strategy, secret string) (int, []string) {
	sess, err := solver.NewSession(length, domain)
	if err != nil {
		fatalf("new session: %v", err)
	}
	var guesses []string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		guess, err := sess.BestGuess(pickStrategy(strat, attempt))
		if err != nil {
			return 0, guesses
		}
		guesses = append(guesses, guess)
		fb := feedback.Pattern(guess, secret)
		if feedback.AllCorrect(fb) {
			return attempt, guesses
		}
		if err := sess.AddFeedback(guess, fb); err != nil {
			return 0, guesses
		}
	}
	return 0, guesses
}

// pickStrategy opens with the cached first guess, then uses the chosen
// strategy.
func pickStrategy(strat rank.Strategy, attempt int) rank.Strategy {
	if attempt == 1 && strat != rank.Random {
		return rank.StrategicFirst
	}
	return strat
}

// transcriptValid reports whether a relayed guess/feedback pair matches
// the session's word length. board and AllCorrect assume it does.
func transcriptValid(guess string, fb []feedback.Symbol, length int) bool {
	return len(guess) == length && len(fb) == length
}

// board renders one colored guess row.
func board(guess string, fb []feedback.Symbol) string {
	var b strings.Builder
	for i := range fb {
		letter := strings.ToUpper(string(guess[i]))
		switch fb[i] {
		case feedback.Correct:
			b.WriteString(colorstring.Color("[_green_][black] " + letter + " [reset]"))
		case feedback.Present:
			b.WriteString(colorstring.Color("[_yellow_][black] " + letter + " [reset]"))
		default:
			b.WriteString(colorstring.Color("[_white_][black] " + letter + " [reset]"))
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func printStats(sess *solver.Session) {
	st := sess.Stats()
	colorstring.Printf("  candidates: [green]%d[reset]/%d  eliminated: [magenta]%.1f%%\n",
		st.CandidateCount, st.DictionarySize, st.EliminationRate*100)
	if st.CandidateCount > 0 && st.CandidateCount <= 20 {
		fmt.Printf("  remaining: %s\n", strings.Join(sess.Candidates(), " "))
	}
}

func prompt(in *bufio.Scanner, msg string) bool {
	fmt.Print(msg)
	if !in.Scan() {
		return false
	}
	return strings.TrimSpace(strings.ToLower(in.Text())) != "quit"
}

func scaled(n, total int) int {
	if total == 0 {
		return 0
	}
	w := n * 40 / total
	if n > 0 && w == 0 {
		w = 1
	}
	return w
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
