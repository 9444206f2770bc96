// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kbpress/internal/auth"
)

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestRequireAdmin(t *testing.T) {
	gate := auth.NewGate("s3cret", "", false)

	t.Run("rejects without credentials", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAdmin(gate)(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/articles/x", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("next handler should NOT have been called")
		}
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Unauthorized") {
			t.Errorf("body: %q", rr.Body.String())
		}
	})

	t.Run("passes with bearer token", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAdmin(gate)(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/articles/x", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("passes with admin cookie", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAdmin(gate)(inner)

		req := httptest.NewRequest(http.MethodPost, "/api/articles/x", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "s3cret"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("next handler should have been called")
		}
	})
}
