package httpserver

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/krelmy/wordle-solver/internal/history"
	"github.com/krelmy/wordle-solver/internal/store"
)

// newAuthServer runs with a throwaway SQLite history DB so the auth and
// persistence routes are mounted.
func newAuthServer(t *testing.T) *Server {
	t.Helper()
	hist, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = hist.Close() })
	return New(store.NewMemoryStore(), hist)
}

func signup(t *testing.T, s *Server, username, password string) []*http.Cookie {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: username, Password: password})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: %d %s", rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}

func TestSignupSolveHistoryRoundTrip(t *testing.T) {
	s := newAuthServer(t)
	cookies := signup(t, s, "frida", "correcthorse")

	rec := doJSON(t, s, http.MethodGet, "/auth/me", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /auth/me: %d %s", rec.Code, rec.Body.String())
	}
	me := decode[authUser](t, rec)
	if me.Username != "frida" || me.ID == "" {
		t.Fatalf("me = %+v", me)
	}

	// A session created with the auth cookie is owned by the user.
	rec = doJSON(t, s, http.MethodPost, "/session/new",
		newSessionReq{Words: []string{"house", "mouse"}}, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /session/new: %d %s", rec.Code, rec.Body.String())
	}
	id := decode[newSessionRes](t, rec).SessionID

	rec = doJSON(t, s, http.MethodPost, "/session/"+id+"/feedback",
		feedbackReq{Guess: "house", Feedback: "GGGGG"}, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST feedback: %d %s", rec.Code, rec.Body.String())
	}
	if fb := decode[feedbackRes](t, rec); !fb.Solved {
		t.Fatalf("response = %+v", fb)
	}

	rec = doJSON(t, s, http.MethodGet, "/stats/me", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /stats/me: %d %s", rec.Code, rec.Body.String())
	}
	agg := decode[history.Aggregate](t, rec)
	if agg.Runs != 1 || agg.Solved != 1 || agg.AvgAttempts != 1 {
		t.Errorf("aggregate = %+v", agg)
	}

	rec = doJSON(t, s, http.MethodGet, "/history/mine", nil, cookies...)
	runs := decode[[]history.Run](t, rec)
	if len(runs) != 1 || runs[0].ID != id || runs[0].Attempts != 1 || !runs[0].Solved {
		t.Errorf("runs = %+v", runs)
	}
}

func TestGuestRunsClaimedOnSignup(t *testing.T) {
	s := newAuthServer(t)

	// Guest solve: the server issues an anonymous cookie with the session.
	rec := doJSON(t, s, http.MethodPost, "/session/new",
		newSessionReq{Words: []string{"house", "mouse"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("guest session: %d %s", rec.Code, rec.Body.String())
	}
	anonCookies := rec.Result().Cookies()
	if len(anonCookies) == 0 {
		t.Fatal("no anonymous cookie issued")
	}
	id := decode[newSessionRes](t, rec).SessionID

	rec = doJSON(t, s, http.MethodPost, "/session/"+id+"/feedback",
		feedbackReq{Guess: "house", Feedback: "GGGGG"}, anonCookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("guest feedback: %d %s", rec.Code, rec.Body.String())
	}

	// Signing up with the anonymous cookie transfers the run.
	rec = doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "frida", Password: "correcthorse"}, anonCookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: %d %s", rec.Code, rec.Body.String())
	}
	cookies := append(anonCookies, rec.Result().Cookies()...)

	rec = doJSON(t, s, http.MethodGet, "/stats/me", nil, cookies...)
	agg := decode[history.Aggregate](t, rec)
	if agg.Runs != 1 || agg.Solved != 1 {
		t.Errorf("aggregate after claim = %+v", agg)
	}
}

func TestLogin(t *testing.T) {
	s := newAuthServer(t)
	signup(t, s, "frida", "correcthorse")

	rec := doJSON(t, s, http.MethodPost, "/auth/login",
		loginReq{Username: "frida", Password: "wrong-password"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/auth/login",
		loginReq{Username: "frida", Password: "correcthorse"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()

	rec = doJSON(t, s, http.MethodGet, "/auth/me", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /auth/me after login: %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	s := newAuthServer(t)
	for _, path := range []string{"/auth/me", "/stats/me", "/history/mine"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without auth: %d, want 401", path, rec.Code)
		}
	}
}

func TestSignupValidation(t *testing.T) {
	s := newAuthServer(t)

	rec := doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "ab", Password: "correcthorse"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short username: %d, want 400", rec.Code)
	}
	rec = doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "frida", Password: "short"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short password: %d, want 400", rec.Code)
	}

	signup(t, s, "frida", "correcthorse")
	rec = doJSON(t, s, http.MethodPost, "/auth/signup",
		signupReq{Username: "frida", Password: "correcthorse"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate username: %d, want 409", rec.Code)
	}
}
