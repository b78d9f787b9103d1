// internal/words/words.go
//
// Word domain loading for the solver.
//
// Responsibilities:
//   - Load a fixed-length dictionary from an environment-provided file
//     or fall back to embedded defaults (English and French).
//   - Normalize entries: lowercase, exact length, alphabetic a–z,
//     first occurrence wins. Order is preserved so candidate output is
//     deterministic.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   overrides the embedded lists.
//   WORDS_LANG=french               default language when none is given.
//
// The embedded defaults carry 5-letter words; other lengths require a
// WORDS_FILE whose entries have that length.

package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

//go:embed english_5.txt
var embeddedEnglish string

//go:embed french_5.txt
var embeddedFrench string

// Languages with embedded default lists.
const (
	English = "english"
	French  = "french"
)

// embedCache holds normalized embedded lists keyed by language/length.
// The WORDS_FILE path is never cached so test overrides stay live.
var embedCache sync.Map

// Load returns the word domain for a language and word length. A
// WORDS_FILE override is read first; otherwise the embedded list for
// the language is used. Callers must treat the result as read-only.
// An empty result is an error — a solver without a domain cannot do
// anything.
func Load(language string, length int) ([]string, error) {
	if path := os.Getenv("WORDS_FILE"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("words: open %s: %w", path, err)
		}
		defer f.Close()
		list, err := FromReader(f, length)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("words: %s has no %d-letter words", path, length)
		}
		return list, nil
	}

	language = strings.ToLower(language)
	if language == "" {
		language = strings.ToLower(os.Getenv("WORDS_LANG"))
		if language == "" {
			language = English
		}
	}

	var raw string
	switch language {
	case English:
		raw = embeddedEnglish
	case French:
		raw = embeddedFrench
	default:
		return nil, fmt.Errorf("words: unknown language %q", language)
	}

	key := language + "/" + strconv.Itoa(length)
	if v, ok := embedCache.Load(key); ok {
		return v.([]string), nil
	}
	list := normalize(strings.Split(raw, "\n"), length)
	if len(list) == 0 {
		return nil, fmt.Errorf("words: no embedded %d-letter words for %s", length, language)
	}
	embedCache.Store(key, list)
	return list, nil
}

// FromReader reads one word per line, keeping valid entries of the
// given length.
func FromReader(r io.Reader, length int) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read: %w", err)
	}
	return normalize(lines, length), nil
}

// normalize lowercases and filters lines, deduplicating while keeping
// first-seen order.
func normalize(lines []string, length int) []string {
	seen := make(map[string]struct{}, len(lines))
	var out []string
	for _, line := range lines {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
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
