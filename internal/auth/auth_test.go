// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPlainToken(t *testing.T) {
	g := NewGate("s3cret", "", false)

	if !g.Verify("s3cret") {
		t.Error("correct token rejected")
	}
	if g.Verify("wrong") {
		t.Error("wrong token accepted")
	}
	if g.Verify("") {
		t.Error("empty token accepted")
	}
}

func TestVerifyHashedToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	// The hash takes precedence even when a plain token is also set.
	g := NewGate("decoy", string(hash), false)

	if !g.Verify("s3cret") {
		t.Error("correct token rejected against hash")
	}
	if g.Verify("decoy") {
		t.Error("plain token accepted when hash is configured")
	}
}

func TestVerifyUnconfiguredGate(t *testing.T) {
	g := NewGate("", "", false)
	if g.Verify("anything") {
		t.Error("unconfigured gate must reject all tokens")
	}
}

func TestAuthenticatedBearerHeader(t *testing.T) {
	g := NewGate("s3cret", "", false)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	if !g.Authenticated(req) {
		t.Error("valid bearer token rejected")
	}

	req.Header.Set("Authorization", "Bearer nope")
	if g.Authenticated(req) {
		t.Error("invalid bearer token accepted")
	}

	req.Header.Set("Authorization", "Basic s3cret")
	if g.Authenticated(req) {
		t.Error("non-bearer scheme accepted")
	}
}

func TestAuthenticatedCookie(t *testing.T) {
	g := NewGate("s3cret", "", false)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	if g.Authenticated(req) {
		t.Error("request without credentials accepted")
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "s3cret"})
	if !g.Authenticated(req) {
		t.Error("valid cookie rejected")
	}
}

func TestLoginSetsCookie(t *testing.T) {
	g := NewGate("s3cret", "", false)

	rr := httptest.NewRecorder()
	if g.Login(rr, "wrong") {
		t.Error("login accepted wrong token")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("cookie set on failed login")
	}

	rr = httptest.NewRecorder()
	if !g.Login(rr, "s3cret") {
		t.Fatal("login rejected correct token")
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies: %+v", cookies)
	}
	if cookies[0].Value != "s3cret" || !cookies[0].HttpOnly {
		t.Errorf("cookie: %+v", cookies[0])
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	g := NewGate("s3cret", "", false)

	rr := httptest.NewRecorder()
	g.Logout(rr)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies: %+v", cookies)
	}
	if cookies[0].MaxAge != -1 || cookies[0].Value != "" {
		t.Errorf("logout cookie: %+v", cookies[0])
	}
}
