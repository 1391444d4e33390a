// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hostwise/internal/store"
)

func TestSetupRefusesWhenAccountExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	h := NewAuthHandler(store.NewUserStore(db), nil)

	body := `{"email": "second@example.com", "password": "supersecret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/setup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Setup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already registered") {
		t.Errorf("expected the idempotent already-registered reply, got %q", rec.Body.String())
	}
	// No INSERT may have run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSetupRejectsWeakPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	h := NewAuthHandler(store.NewUserStore(db), nil)

	body := `{"email": "admin@example.com", "password": "short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/setup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Setup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
		t.Errorf("expected VALIDATION_ERROR, got %q", rec.Body.String())
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "display_name", "role",
			"totp_secret", "totp_enabled", "created_at", "updated_at",
		}))

	h := NewAuthHandler(store.NewUserStore(db), nil)

	body := `{"email": "ghost@example.com", "password": "whatever"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_CREDENTIALS") {
		t.Errorf("expected INVALID_CREDENTIALS, got %q", rec.Body.String())
	}
}

func TestVerify2FAWithoutSession(t *testing.T) {
	h := NewAuthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/2fa/verify", strings.NewReader(`{"code":"123456"}`))
	rec := httptest.NewRecorder()
	h.Verify2FA(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
