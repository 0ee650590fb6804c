// Package flash stores one-shot status messages in a browser cookie.
//
// LIFECYCLE:
// A handler that redirects calls Set, stashing a (kind, text) pair in
// the "flash" cookie. The next page render calls Pop, which returns the
// message AND expires the cookie in the same response — so a flash is
// shown exactly once and can never leak into an unrelated later view.
// Setting a new flash overwrites any pending one.
//
// The cookie is plain base64 JSON, not signed. The only thing a client
// can do by forging it is change the banner on their own next page
// load; nothing reads the flash to make decisions.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/farhan/scribe/internal/model"
)

// cookieName holds the pending flash. One cookie, one message — a new
// Set replaces whatever was there.
const cookieName = "flash"

// Set stashes a flash message to be displayed by the next render.
func Set(w http.ResponseWriter, kind, text string) {
	payload, err := json.Marshal(model.Flash{Kind: kind, Text: text})
	if err != nil {
		return // a string pair can't fail to marshal; nothing sane to do anyway
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   300, // survives the redirect, not a forgotten tab
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending flash, if any, and clears it in the response.
// A malformed cookie is treated as no flash (and still cleared).
func Pop(w http.ResponseWriter, r *http.Request) *model.Flash {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	// Expire the cookie regardless of whether it decodes — read-then-clear.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var f model.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Text == "" {
		return nil
	}
	return &f
}
