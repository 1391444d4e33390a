// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"hostwise/internal/handlers"
	"hostwise/internal/session"
)

// testRouter builds the route tree with empty handlers. Requests that
// stop at the middleware layer never reach a handler, which is exactly
// what these tests exercise.
func testRouter() http.Handler {
	// The session store is only touched when a session cookie is
	// present, so a client pointing nowhere is fine here.
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:1"}), false)

	return New(Deps{
		Public:   handlers.NewPublicHandler(nil, nil, nil, nil, nil),
		Intake:   handlers.NewIntakeHandler(nil),
		Auth:     handlers.NewAuthHandler(nil, nil),
		Admin:    handlers.NewAdminHandler(nil, nil, nil, nil, nil, nil, nil, nil),
		Sessions: sessions,
	})
}

func TestHealthIsPublic(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := testRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/posts"},
		{http.MethodPost, "/api/admin/posts"},
		{http.MethodGet, "/api/admin/categories"},
		{http.MethodDelete, "/api/admin/partners/6f1e0a38-0000-0000-0000-000000000000"},
		{http.MethodGet, "/api/service-request"},
		{http.MethodPost, "/api/admin/documents"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "AUTH_REQUIRED") {
			t.Errorf("%s %s: expected AUTH_REQUIRED body, got %q", p.method, p.path, rec.Body.String())
		}
	}
}

func TestTwoFASetupRequiresSession(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/2fa/setup", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}
