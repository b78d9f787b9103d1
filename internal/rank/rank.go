// internal/rank/rank.go
//
// The ranking engine: scores candidate guesses against the live
// candidate set and recommends the next guess.
//
// Every strategy is built on the same primitive: partition the
// candidate set by the feedback pattern each hypothetical secret would
// produce for a guess (feedback.Pattern), then score the partition.
// Entropy wants many small groups, minimax fears one big group, and
// frequency skips the simulation entirely and scores letters in place.
//
// Complexity is O(pool × candidates × length) per call; with dictionary
// sizes in the hundreds-to-thousands range that is well inside
// interactive latency, so nothing here is incremental or sampled.

package rank

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"golang.org/x/exp/constraints"

	"github.com/krelmy/wordle-solver/internal/feedback"
)

// ErrEmpty is returned when ranking is invoked on an empty candidate
// set.
var ErrEmpty = errors.New("rank: empty candidate set")

// openers are known strong opening words. FirstGuess uses the first one
// present in the domain before falling back to a full entropy scan.
var openers = []string{
	"arose", "slate", "crane", "soare", "trace",
	"crate", "irate", "stare", "adieu", "audio",
}

// Ranker scores guesses for one word domain. The opening-guess analysis
// is computed once per domain and cached.
type Ranker struct {
	domain    []string
	domainSet map[string]struct{}

	firstOnce sync.Once
	first     string
	firstErr  error
}

// New creates a Ranker over the full word domain.
func New(domain []string) *Ranker {
	set := make(map[string]struct{}, len(domain))
	for _, w := range domain {
		set[w] = struct{}{}
	}
	return &Ranker{domain: domain, domainSet: set}
}

// Best returns the top guess among the candidates themselves.
//
// A single candidate is returned as-is without scoring; an empty set is
// ErrEmpty, which signals contradictory feedback upstream.
func (r *Ranker) Best(strategy Strategy, candidates []string) (string, error) {
	return r.best(strategy, candidates, candidates)
}

// BestProbe is Best with the guess pool widened to the full domain, so
// a word that cannot be the answer may still be recommended as a probe.
func (r *Ranker) BestProbe(strategy Strategy, candidates []string) (string, error) {
	return r.best(strategy, candidates, r.domain)
}

func (r *Ranker) best(strategy Strategy, candidates, pool []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrEmpty
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	switch strategy {
	case MaxInfo:
		return bestByEntropy(pool, candidates), nil
	case Minimax:
		return bestByMinimax(pool, candidates), nil
	case Frequency:
		return bestByFrequency(candidates), nil
	case StrategicFirst:
		// The cached opening only applies before feedback exists; the
		// session routes that case to FirstGuess. Mid-game it degrades
		// to the entropy scan.
		return bestByEntropy(pool, candidates), nil
	case Random:
		return randomPick(candidates), nil
	default:
		return "", fmt.Errorf("rank: unknown strategy %d", strategy)
	}
}

// FirstGuess returns the cached opening recommendation: the first
// known-strong opener present in the domain, or, failing that, the
// entropy winner over the whole domain (the candidate set equals the
// domain before any feedback exists).
func (r *Ranker) FirstGuess() (string, error) {
	r.firstOnce.Do(func() {
		if len(r.domain) == 0 {
			r.firstErr = ErrEmpty
			return
		}
		for _, w := range openers {
			if _, ok := r.domainSet[w]; ok {
				r.first = w
				return
			}
		}
		r.first = bestByEntropy(r.domain, r.domain)
	})
	return r.first, r.firstErr
}

// Entropy is the Shannon entropy of the feedback partition guess
// induces on candidates: H = -Σ p·log2(p) over partition sizes. Always
// >= 0; exactly 0 when the guess cannot split the set at all.
func Entropy(guess string, candidates []string) float64 {
	if len(candidates) == 0 {
		return 0
	}
	parts := make(map[int]int)
	for _, secret := range candidates {
		parts[feedback.Key(feedback.Pattern(guess, secret))]++
	}
	total := float64(len(candidates))
	h := 0.0
	for _, n := range parts {
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	return h
}

// WorstCase is the size of the largest partition guess leaves behind —
// the number of candidates that would survive the unluckiest feedback.
func WorstCase(guess string, candidates []string) int {
	parts := make(map[int]int)
	for _, secret := range candidates {
		parts[feedback.Key(feedback.Pattern(guess, secret))]++
	}
	worst := 0
	for _, n := range parts {
		if n > worst {
			worst = n
		}
	}
	return worst
}

// bestByEntropy maximizes Entropy over the pool; ties go to the
// lexicographically smallest word.
func bestByEntropy(pool, candidates []string) string {
	best, bestH := "", math.Inf(-1)
	for _, g := range pool {
		h := Entropy(g, candidates)
		if h > bestH || (h == bestH && g < best) {
			best, bestH = g, h
		}
	}
	return best
}

// bestByMinimax minimizes WorstCase over the pool; ties break by
// entropy descending, then lexicographically.
func bestByMinimax(pool, candidates []string) string {
	best := ""
	bestWorst := int(^uint(0) >> 1)
	bestH := math.Inf(-1)
	for _, g := range pool {
		worst := WorstCase(g, candidates)
		if worst > bestWorst {
			continue
		}
		h := Entropy(g, candidates)
		switch {
		case worst < bestWorst,
			worst == bestWorst && h > bestH,
			worst == bestWorst && h == bestH && g < best:
			best, bestWorst, bestH = g, worst, h
		}
	}
	return best
}

// bestByFrequency scores candidates by per-position letter frequency.
// A repeated letter earns credit only at its first occurrence, which
// steers toward information-diverse guesses.
func bestByFrequency(candidates []string) string {
	freqs := positionFrequencies(candidates)
	return maxBy(candidates, func(w string) float64 {
		return frequencyScore(w, freqs)
	})
}

// positionFrequencies computes, for each position, the fraction of
// candidates carrying each letter there.
func positionFrequencies(candidates []string) [][26]float64 {
	if len(candidates) == 0 {
		return nil
	}
	length := len(candidates[0])
	freqs := make([][26]float64, length)
	for _, w := range candidates {
		for i := 0; i < length && i < len(w); i++ {
			freqs[i][w[i]-'a']++
		}
	}
	total := float64(len(candidates))
	for i := range freqs {
		for j := range freqs[i] {
			freqs[i][j] /= total
		}
	}
	return freqs
}

func frequencyScore(word string, freqs [][26]float64) float64 {
	var seen [26]bool
	score := 0.0
	for i := 0; i < len(word) && i < len(freqs); i++ {
		j := word[i] - 'a'
		if seen[j] {
			continue
		}
		seen[j] = true
		score += freqs[i][j]
	}
	return score
}

// randomPick selects uniformly using crypto/rand.
func randomPick(candidates []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	return candidates[n.Int64()]
}

// maxBy returns the element maximizing key, keeping the earliest on
// ties so results stay deterministic.
func maxBy[T any, K constraints.Ordered](items []T, key func(T) K) T {
	best := items[0]
	bestKey := key(best)
	for _, it := range items[1:] {
		if k := key(it); k > bestKey {
			best, bestKey = it, k
		}
	}
	return best
}
