// internal/httpserver/server.go
//
// HTTP wiring for the solver service.
// Responsibilities:
//   - Router + middleware (request IDs, timeouts, panic recovery, JSON,
//     CORS, request logging).
//   - Public endpoints: "/", "/health".
//   - Session endpoints (optional auth): create a solving session, feed
//     it observations, read candidates/recommendations/stats, reset.
//   - Auth + history endpoints (require auth) when a history store is
//     configured.
//
// Error mapping follows the solver taxonomy: invalid input → 400,
// contradiction / no candidates → 409, unknown session → 404. Nothing
// here is fatal to the process.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/krelmy/wordle-solver/internal/feedback"
	"github.com/krelmy/wordle-solver/internal/history"
	"github.com/krelmy/wordle-solver/internal/rank"
	"github.com/krelmy/wordle-solver/internal/solver"
	"github.com/krelmy/wordle-solver/internal/store"
	"github.com/krelmy/wordle-solver/internal/words"
)

// Server bundles router, live session store, and optional history DB.
type Server struct {
	r    *chi.Mux
	st   store.Store
	hist *history.Store // nil disables auth + persistence
}

// New constructs a Server, installs middleware, and registers routes.
// Pass a nil history store to run without persistence or accounts.
func New(st store.Store, hist *history.Store) *Server {
	s := &Server{r: chi.NewRouter(), st: st, hist: hist}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(15 * time.Second))
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /session/new","POST /session/{id}/feedback","GET /session/{id}/best-guess"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/session", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/feedback", s.handleFeedback)
			r.Get("/candidates", s.handleCandidates)
			r.Get("/best-guess", s.handleBestGuess)
			r.Get("/stats", s.handleStats)
			r.Post("/reset", s.handleReset)
		})
	})

	if s.hist != nil {
		s.mountAuthRoutes()
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one structured log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- sessions ------------------------------------

// newSessionReq/Res payloads for POST /session/new.
type newSessionReq struct {
	WordLength int      `json:"wordLength"` // default 5
	Language   string   `json:"language"`   // "english" (default) or "french"
	Strategy   string   `json:"strategy"`   // recorded in history; default max_info
	Words      []string `json:"words"`      // optional explicit dictionary (testing)
}
type newSessionRes struct {
	SessionID      string `json:"sessionId"`
	WordLength     int    `json:"wordLength"`
	Language       string `json:"language"`
	DictionarySize int    `json:"dictionarySize"`
}

// handleNewSession creates a solving session over the requested word
// domain and registers a history run row (best effort).
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.WordLength == 0 {
		req.WordLength = 5
	}
	if req.Language == "" {
		req.Language = getEnv("WORDS_LANG", words.English)
	}
	if req.Strategy == "" {
		req.Strategy = rank.MaxInfo.String()
	}
	if _, err := rank.ParseStrategy(req.Strategy); err != nil {
		http.Error(w, `{"error":"unknown_strategy"}`, http.StatusBadRequest)
		return
	}

	domain := req.Words
	if len(domain) == 0 {
		var err error
		domain, err = words.Load(req.Language, req.WordLength)
		if err != nil {
			log.Warn().Err(err).Str("language", req.Language).Msg("load words")
			http.Error(w, `{"error":"no_dictionary"}`, http.StatusBadRequest)
			return
		}
	}

	sess, err := solver.NewSession(req.WordLength, domain)
	if err != nil {
		http.Error(w, `{"error":"invalid_word_length"}`, http.StatusBadRequest)
		return
	}
	if len(sess.Dictionary()) == 0 {
		http.Error(w, `{"error":"empty_dictionary"}`, http.StatusBadRequest)
		return
	}

	sv := &store.Solve{
		ID:        genID(),
		Language:  req.Language,
		CreatedAt: time.Now().UTC(),
		Session:   sess,
	}
	if err := s.st.Save(r.Context(), sv); err != nil {
		log.Error().Err(err).Msg("save solve")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if s.hist != nil {
		run := history.Run{
			ID:         sv.ID,
			Language:   req.Language,
			WordLength: req.WordLength,
			Strategy:   req.Strategy,
		}
		if me := currentUser(r); me != nil {
			run.UserID = me.ID
		} else {
			run.AnonID = s.ensureAnonID(w, r)
		}
		if err := s.hist.StartRun(r.Context(), run); err != nil {
			log.Warn().Err(err).Str("solveId", sv.ID).Msg("insert run row")
		}
	}

	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID:      sv.ID,
		WordLength:     sess.WordLength(),
		Language:       req.Language,
		DictionarySize: len(sess.Dictionary()),
	})
}

// feedbackReq/Res payloads for POST /session/{id}/feedback.
type feedbackReq struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"` // compact form, e.g. "XXYGG"
}
type feedbackRes struct {
	Solved bool         `json:"solved"`
	Stats  solver.Stats `json:"stats"`
}

// handleFeedback folds one observation into the session and persists
// progress (best effort).
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sv, ok := s.solve(w, r)
	if !ok {
		return
	}
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	fb, err := feedback.Parse(req.Feedback)
	if err != nil {
		http.Error(w, `{"error":"invalid_feedback"}`, http.StatusBadRequest)
		return
	}

	sv.Mu.Lock()
	defer sv.Mu.Unlock()

	if err := sv.Session.AddFeedback(req.Guess, fb); err != nil {
		switch {
		case errors.Is(err, solver.ErrInvalidInput):
			http.Error(w, `{"error":"invalid_input"}`, http.StatusBadRequest)
		case errors.Is(err, solver.ErrContradiction):
			http.Error(w, `{"error":"contradiction"}`, http.StatusConflict)
		default:
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		}
		return
	}
	sv.Attempts++

	solved := feedback.AllCorrect(fb)
	if solved {
		sv.Finished, sv.Solved = true, true
	}

	if s.hist != nil {
		if err := s.hist.BumpAttempts(r.Context(), sv.ID); err != nil {
			log.Warn().Err(err).Msg("bump attempts")
		}
		if solved {
			if err := s.hist.FinishRun(r.Context(), sv.ID, true); err != nil {
				log.Warn().Err(err).Msg("finish run")
			}
		}
	}

	_ = json.NewEncoder(w).Encode(feedbackRes{Solved: solved, Stats: sv.Session.Stats()})
}

// handleCandidates returns the live candidate set, optionally truncated
// with ?limit=.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	sv, ok := s.solve(w, r)
	if !ok {
		return
	}
	sv.Mu.Lock()
	cands := sv.Session.Candidates()
	sv.Mu.Unlock()

	total := len(cands)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < total {
			cands = cands[:n]
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"total": total, "candidates": cands})
}

// handleBestGuess scores the candidates under ?strategy= (default
// max_info). ?probe=true widens the guess pool to the full dictionary.
func (s *Server) handleBestGuess(w http.ResponseWriter, r *http.Request) {
	sv, ok := s.solve(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("strategy")
	if name == "" {
		name = rank.MaxInfo.String()
	}
	strategy, err := rank.ParseStrategy(name)
	if err != nil {
		http.Error(w, `{"error":"unknown_strategy"}`, http.StatusBadRequest)
		return
	}

	sv.Mu.Lock()
	var guess string
	if r.URL.Query().Get("probe") == "true" {
		guess, err = sv.Session.BestProbe(strategy)
	} else {
		guess, err = sv.Session.BestGuess(strategy)
	}
	candidates := sv.Session.Stats().CandidateCount
	sv.Mu.Unlock()

	if err != nil {
		if errors.Is(err, solver.ErrNoCandidates) {
			http.Error(w, `{"error":"no_candidates"}`, http.StatusConflict)
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"guess":      guess,
		"strategy":   strategy.String(),
		"candidates": candidates,
	})
}

// handleStats returns the session's progress snapshot.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sv, ok := s.solve(w, r)
	if !ok {
		return
	}
	sv.Mu.Lock()
	st := sv.Session.Stats()
	sv.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(st)
}

// handleReset clears the session's constraints and counters.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sv, ok := s.solve(w, r)
	if !ok {
		return
	}
	sv.Mu.Lock()
	sv.Session.Reset()
	sv.Attempts = 0
	sv.Finished, sv.Solved = false, false
	st := sv.Session.Stats()
	sv.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(st)
}

// solve looks up the solve for the {id} route param, writing a 404 on
// failure.
func (s *Server) solve(w http.ResponseWriter, r *http.Request) (*store.Solve, bool) {
	id := chi.URLParam(r, "id")
	sv, err := s.st.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sv, true
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
