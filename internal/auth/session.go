// Package auth — session tokens.
//
// SESSION MODEL:
// The session is a signed JWT in an HttpOnly cookie. The token carries
// the authenticated username in the "sub" claim; there is no server-side
// session store, so "logging out" is simply clearing the cookie. The
// signature ensures a client can't mint a session for someone else
// without the secret key.
//
// This is the whole authorization model: a request either has a valid
// session (any signed-in user may do anything) or it doesn't. There are
// no roles and no per-document ownership.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// SessionCookie is the name of the cookie holding the session token.
const SessionCookie = "session"

// sessionTTL is how long a sign-in lasts before the user must log in
// again. There is no refresh flow — a day is plenty for a utility app.
const sessionTTL = 24 * time.Hour

const issuer = "scribe"

// SessionService issues and validates session tokens. It holds the HMAC
// secret used for both signing and verification.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a SessionService with the given secret.
// The secret should be at least 32 bytes of random data in production;
// anything shorter than 16 is rejected outright.
func NewSessionService(secret string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &SessionService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The username lives in the standard "sub"
// claim; "jti" gets a fresh xid per token so two logins by the same
// user never produce byte-identical tokens.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given username.
//
// Signing is HS256 — symmetric, one key for sign and verify, which is
// all a single-server deployment needs.
func (s *SessionService) Issue(username string) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token, returning the username
// it was issued for.
//
// The jwt library checks the signature and expiry; we additionally pin
// the issuer and restrict the algorithm to HMAC so a token signed with
// "none" (or an RSA public key confusion) is rejected.
func (s *SessionService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || c.Subject == "" {
		return "", errors.New("auth: session token has no subject")
	}

	return c.Subject, nil
}

// SetCookie writes the session cookie on a successful login.
//
// HttpOnly keeps the token away from JavaScript; SameSite=Lax keeps it
// off cross-site POSTs. Secure is left to the deployment's proxy since
// local development runs over plain HTTP.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie. Used by sign-out and by the
// login handler when credentials fail (a stale session must not survive
// a failed re-login).
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
