// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"hostwise/internal/session"
)

func sessionRequest(data *session.Data) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	if data != nil {
		ctx := context.WithValue(r.Context(), SessionKey, data)
		r = r.WithContext(ctx)
	}
	return r
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAuth(okHandler()).ServeHTTP(rec, sessionRequest(nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AUTH_REQUIRED") {
		t.Errorf("expected AUTH_REQUIRED error code, got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	data := &session.Data{UserID: uuid.New(), Role: "admin", TwoFADone: true}

	rec := httptest.NewRecorder()
	RequireAuth(okHandler()).ServeHTTP(rec, sessionRequest(data))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequire2FABlocksPendingSession(t *testing.T) {
	data := &session.Data{UserID: uuid.New(), Role: "admin", TwoFADone: false}

	rec := httptest.NewRecorder()
	Require2FA(okHandler()).ServeHTTP(rec, sessionRequest(data))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TWO_FA_REQUIRED") {
		t.Errorf("expected TWO_FA_REQUIRED error code, got %q", rec.Body.String())
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	data := &session.Data{UserID: uuid.New(), Role: "editor", TwoFADone: true}

	rec := httptest.NewRecorder()
	RequireAdmin(okHandler()).ServeHTTP(rec, sessionRequest(data))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestSessionFromCtxWithoutSession(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}
