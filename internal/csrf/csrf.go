// Package csrf implements the double-submit cookie scheme: a secret httpOnly
// cookie plus a script-readable mirror whose value the client echoes back in a
// request header.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
)

const (
	DefaultCookieName = "csrf_token"
	DefaultMirrorName = "csrf_token_mirror"
	DefaultHeaderName = "x-csrf-token"

	tokenBytes = 32
)

// Error is returned when a request fails verification.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

// ErrInvalidToken is the only verification failure.
var ErrInvalidToken = &Error{Status: http.StatusForbidden, Msg: "Forbidden: invalid CSRF token"}

// Guard issues and verifies CSRF tokens.
type Guard struct {
	cookieName string
	mirrorName string
	headerName string
	secure     bool
	sameSite   http.SameSite
}

// New returns a Guard with the default cookie and header names.
func New(options ...func(*Guard)) *Guard {
	g := &Guard{
		cookieName: DefaultCookieName,
		mirrorName: DefaultMirrorName,
		headerName: DefaultHeaderName,
		sameSite:   http.SameSiteLaxMode,
	}
	for _, o := range options {
		o(g)
	}
	return g
}

// WithSecure marks both cookies Secure.
func WithSecure(secure bool) func(*Guard) {
	return func(g *Guard) {
		g.secure = secure
	}
}

// WithNames overrides the cookie, mirror cookie and header names. Empty values keep the defaults.
func WithNames(cookie, mirror, header string) func(*Guard) {
	return func(g *Guard) {
		if cookie != "" {
			g.cookieName = cookie
		}
		if mirror != "" {
			g.mirrorName = mirror
		}
		if header != "" {
			g.headerName = header
		}
	}
}

// HeaderName is the header the client must echo the token in.
func (g *Guard) HeaderName() string { return g.headerName }

// MirrorName is the script-readable cookie name.
func (g *Guard) MirrorName() string { return g.mirrorName }

// IssueOrGet makes sure the secret cookie and its mirror exist and carry the
// same value, and returns that value. Cookies are only written when missing.
func (g *Guard) IssueOrGet(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(g.cookieName); err == nil && c.Value != "" {
		if m, err := r.Cookie(g.mirrorName); err != nil || m.Value != c.Value {
			http.SetCookie(w, g.cookie(g.mirrorName, c.Value, false))
		}
		return c.Value, nil
	}

	token, err := NewToken()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, g.cookie(g.cookieName, token, true))
	http.SetCookie(w, g.cookie(g.mirrorName, token, false))
	return token, nil
}

// VerifyRequest compares the request header token with the secret cookie.
func (g *Guard) VerifyRequest(r *http.Request) error {
	var cookieToken string
	if c, err := r.Cookie(g.cookieName); err == nil {
		cookieToken = c.Value
	}
	return Verify(r.Header.Get(g.headerName), cookieToken)
}

func (g *Guard) cookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: httpOnly,
		Secure:   g.secure,
		SameSite: g.sameSite,
	}
}

// Verify fails with ErrInvalidToken when either token is empty or they differ.
func Verify(headerToken, cookieToken string) error {
	if headerToken == "" || cookieToken == "" {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
