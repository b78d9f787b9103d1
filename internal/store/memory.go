// internal/store/memory.go
//
// In-memory registry of live solving sessions for the HTTP API.
//
// Characteristics:
//   - Stores *Solve records keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes
//     exclusive). The lock guards only the map: a Session is
//     single-caller by contract, so each Solve carries its own mutex
//     and handlers serialize per solve.
//   - State is lost when the process restarts; the solver core never
//     persists constraint state, only finished runs go to history.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/krelmy/wordle-solver/internal/solver"
)

// ErrNotFound is returned by Get for unknown solve IDs.
var ErrNotFound = errors.New("store: solve not found")

// Solve bundles a solver session with request-scoped metadata.
type Solve struct {
	ID        string
	Language  string
	CreatedAt time.Time

	// Mu serializes feedback writes against ranking reads for this
	// solve; sessions themselves are not safe for interleaved calls.
	Mu sync.Mutex

	Attempts int
	Finished bool
	Solved   bool

	Session *solver.Session
}

// Store is the registry interface for live solves. Implementations may
// be backed by memory (this package) or anything else with the same
// lookup semantics.
type Store interface {
	// Save registers or updates a solve record.
	Save(ctx context.Context, s *Solve) error

	// Get retrieves a solve by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Solve, error)
}

// memory is a map-based Store implementation.
type memory struct {
	mu     sync.RWMutex
	solves map[string]*Solve
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{solves: make(map[string]*Solve)}
}

func (m *memory) Save(ctx context.Context, s *Solve) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solves[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Solve, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.solves[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}
