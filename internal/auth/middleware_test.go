package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// okHandler records whether it ran and what username it saw.
type okHandler struct {
	ran      bool
	username string
	hasUser  bool
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ran = true
	h.username, h.hasUser = UsernameFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestRequireUser_NoCookieRedirectsToLogin(t *testing.T) {
	s := newTestSessionService(t)
	next := &okHandler{}
	mw := RequireUser(s)(next)

	req := httptest.NewRequest(http.MethodGet, "/new", nil)
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if next.ran {
		t.Error("guarded handler ran without a session")
	}
	if rr.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}

	// The redirect must carry a flash so the user learns why.
	var flashSet bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			flashSet = true
		}
	}
	if !flashSet {
		t.Error("no flash cookie set on auth redirect")
	}
}

func TestRequireUser_InvalidTokenRedirects(t *testing.T) {
	s := newTestSessionService(t)
	next := &okHandler{}
	mw := RequireUser(s)(next)

	req := httptest.NewRequest(http.MethodGet, "/new", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "bogus"})
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if next.ran {
		t.Error("guarded handler ran with an invalid session token")
	}
	if rr.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusFound)
	}
}

func TestRequireUser_ValidSessionRuns(t *testing.T) {
	s := newTestSessionService(t)
	next := &okHandler{}
	mw := RequireUser(s)(next)

	token, err := s.Issue("alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/new", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if !next.ran {
		t.Fatal("guarded handler did not run with a valid session")
	}
	if next.username != "alice" || !next.hasUser {
		t.Errorf("context username = (%q, %v), want (%q, true)", next.username, next.hasUser, "alice")
	}
}

func TestOptionalUser_AnonymousPassesThrough(t *testing.T) {
	s := newTestSessionService(t)
	next := &okHandler{}
	mw := OptionalUser(s)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if !next.ran {
		t.Fatal("handler did not run for anonymous request")
	}
	if next.hasUser {
		t.Errorf("anonymous request had username %q in context", next.username)
	}
}

func TestOptionalUser_DecoratesContext(t *testing.T) {
	s := newTestSessionService(t)
	next := &okHandler{}
	mw := OptionalUser(s)(next)

	token, _ := s.Issue("bob")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rr := httptest.NewRecorder()

	mw.ServeHTTP(rr, req)

	if !next.ran || next.username != "bob" {
		t.Errorf("handler ran=%v username=%q, want true/%q", next.ran, next.username, "bob")
	}
}
