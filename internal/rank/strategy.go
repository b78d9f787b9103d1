// internal/rank/strategy.go
//
// The closed set of guess-selection strategies and its text encoding
// (used by the HTTP API query parameter and the CLI flag).

package rank

import "fmt"

// Strategy selects how the next guess is scored.
type Strategy uint8

const (
	// MaxInfo maximizes Shannon entropy of the feedback partition.
	MaxInfo Strategy = iota
	// Minimax minimizes the worst-case remaining candidate count.
	Minimax
	// Frequency scores by per-position letter frequency, with no extra
	// credit for repeated letters.
	Frequency
	// StrategicFirst is the cached opening recommendation.
	StrategicFirst
	// Random is a uniform pick, kept as a comparison baseline.
	Random
)

var strategyNames = map[Strategy]string{
	MaxInfo:        "max_info",
	Minimax:        "minimax",
	Frequency:      "frequency",
	StrategicFirst: "strategic_first",
	Random:         "random",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy maps a strategy name to its value. Unknown names are an
// error rather than a silent default.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("rank: unknown strategy %q", name)
}
