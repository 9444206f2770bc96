// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements single-token admin authentication. A caller
// presents the admin token either as a Bearer header or via the admin
// cookie set at login; the configured token may be stored as a bcrypt
// hash so the plaintext never appears in the environment.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName is the name of the admin session cookie.
	CookieName = "kb_admin"

	// cookieMaxAge is the admin cookie lifetime in seconds (7 days).
	cookieMaxAge = 7 * 24 * 60 * 60
)

// Gate validates admin tokens against the configured credential.
type Gate struct {
	token     string
	tokenHash string
	secure    bool
}

// NewGate creates a token gate. hash, when non-empty, is a bcrypt hash of
// the admin token and takes precedence over the plaintext token. secure
// controls the Secure flag on the admin cookie.
func NewGate(token, hash string, secure bool) *Gate {
	return &Gate{token: token, tokenHash: hash, secure: secure}
}

// Verify reports whether the presented token matches the configured
// credential. An unconfigured gate rejects everything.
func (g *Gate) Verify(presented string) bool {
	if presented == "" {
		return false
	}
	if g.tokenHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.tokenHash), []byte(presented)) == nil
	}
	if g.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.token), []byte(presented)) == 1
}

// Authenticated reports whether the request carries a valid admin token,
// checking the Authorization header first and the admin cookie second.
func (g *Gate) Authenticated(r *http.Request) bool {
	if token := bearerToken(r); token != "" {
		return g.Verify(token)
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return g.Verify(cookie.Value)
}

// Login sets the admin cookie after a successful token check.
func (g *Gate) Login(w http.ResponseWriter, token string) bool {
	if !g.Verify(token) {
		return false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cookieMaxAge,
	})
	return true
}

// Logout expires the admin cookie immediately.
func (g *Gate) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		MaxAge:   -1,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
