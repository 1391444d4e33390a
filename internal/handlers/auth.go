// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"hostwise/internal/middleware"
	"hostwise/internal/models"
	"hostwise/internal/session"
	"hostwise/internal/store"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Hostwise Backoffice"

// AuthHandler serves authentication: login, logout, the one-time admin
// bootstrap, and TOTP two-factor enrollment and verification.
type AuthHandler struct {
	users    *store.UserStore
	sessions *session.Store
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(users *store.UserStore, sessions *session.Store) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// Setup handles POST /api/admin/setup. It creates the first admin
// account and is a no-op once any account exists, so re-running the
// bootstrap is safe.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	count, err := h.users.Count()
	if err != nil {
		respondDBError(w, "user count", err)
		return
	}
	if count > 0 {
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "already registered",
		})
		return
	}

	var in struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || len(in.Password) < 10 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"email is required and password must be at least 10 characters")
		return
	}
	if in.DisplayName == "" {
		in.DisplayName = in.Email
	}

	user, err := h.users.Create(in.Email, in.Password, in.DisplayName, models.RoleAdmin)
	if err != nil {
		respondDBError(w, "admin bootstrap", err)
		return
	}

	slog.Info("admin account bootstrapped", "email", user.Email)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "admin account created",
	})
}

// Login handles POST /api/auth/login. A successful password check opens
// a session with the 2FA step still pending; the response tells the
// frontend whether to run enrollment or just ask for a code.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}

	user, err := h.users.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		respondDBError(w, "user lookup", err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, in.Password) {
		// Same response for unknown email and wrong password.
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "")
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "SESSION_ERROR", "")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"needs2FASetup": user.Needs2FASetup(),
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Setup2FA handles GET /api/auth/2fa/setup. Generates a fresh TOTP
// secret for the logged-in user and returns it with a QR code PNG for
// authenticator apps. Re-running setup replaces any unverified secret;
// once TOTP is enabled the endpoint refuses.
func (h *AuthHandler) Setup2FA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "")
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		respondDBError(w, "user lookup", err)
		return
	}
	if user.TOTPEnabled {
		respondError(w, http.StatusConflict, "ALREADY_ENROLLED", "2FA is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "TOTP_ERROR", "")
		return
	}

	if err := h.users.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		respondDBError(w, "totp secret store", err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "QR_ERROR", "")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"secret": key.Secret(),
		"qrCode": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

// Verify2FA handles POST /api/auth/2fa/verify. A valid code completes
// the session's 2FA step; on first verification it also flips the
// user's enrollment flag.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "")
		return
	}

	var in struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		respondDBError(w, "user lookup", err)
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "SETUP_REQUIRED", "run 2FA setup first")
		return
	}

	if !totp.Validate(strings.TrimSpace(in.Code), *user.TOTPSecret) {
		respondError(w, http.StatusUnauthorized, "INVALID_CODE", "")
		return
	}

	if !user.TOTPEnabled {
		if err := h.users.EnableTOTP(user.ID); err != nil {
			respondDBError(w, "totp enable", err)
			return
		}
	}

	sess.TwoFADone = true
	if err := h.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "SESSION_ERROR", "")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
