package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farhan/scribe/internal/model"
)

// flashCookie extracts the flash cookie from a recorded response.
func flashCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestSetThenPop(t *testing.T) {
	// Set writes the cookie...
	setRec := httptest.NewRecorder()
	Set(setRec, model.FlashError, "about.md not found.")

	cookie := flashCookie(t, setRec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("Set() did not write a flash cookie")
	}

	// ...and Pop on the next request returns the message.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	popRec := httptest.NewRecorder()

	f := Pop(popRec, req)
	if f == nil {
		t.Fatal("Pop() returned nil for a pending flash")
	}
	if f.Kind != model.FlashError || f.Text != "about.md not found." {
		t.Errorf("Pop() = %+v, want error/about.md not found.", f)
	}
}

func TestPopClearsCookie(t *testing.T) {
	setRec := httptest.NewRecorder()
	Set(setRec, model.FlashSuccess, "done")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookie(t, setRec))
	popRec := httptest.NewRecorder()
	Pop(popRec, req)

	// Read-then-clear: the same response must expire the cookie so the
	// message can't show up a second time.
	cleared := flashCookie(t, popRec)
	if cleared == nil {
		t.Fatal("Pop() did not write a clearing cookie")
	}
	if cleared.MaxAge >= 0 && cleared.Value != "" {
		t.Errorf("Pop() left the flash cookie alive: MaxAge=%d Value=%q", cleared.MaxAge, cleared.Value)
	}
}

func TestPopWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	if f := Pop(rr, req); f != nil {
		t.Errorf("Pop() with no cookie = %+v, want nil", f)
	}
}

func TestPopMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "%%%not-base64%%%"})
	rr := httptest.NewRecorder()

	// Garbage decodes to no flash — and still gets cleared.
	if f := Pop(rr, req); f != nil {
		t.Errorf("Pop() with malformed cookie = %+v, want nil", f)
	}
	if flashCookie(t, rr) == nil {
		t.Error("Pop() did not clear a malformed cookie")
	}
}

func TestSetOverwritesPending(t *testing.T) {
	// Only one flash is pending at a time: the second Set wins.
	rec := httptest.NewRecorder()
	Set(rec, model.FlashSuccess, "first")
	Set(rec, model.FlashError, "second")

	var last *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			last = c
		}
	}
	if last == nil {
		t.Fatal("no flash cookie written")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(last)
	f := Pop(httptest.NewRecorder(), req)
	if f == nil || f.Text != "second" {
		t.Errorf("Pop() after overwrite = %+v, want the second message", f)
	}
}
