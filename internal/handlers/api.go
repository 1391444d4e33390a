// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public API and
// the admin backoffice. All endpoints speak JSON.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// apiError is the uniform error envelope.
type apiError struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondError writes a JSON error envelope. code is a stable
// machine-readable identifier; message is optional human text.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, apiError{Error: code, Message: message})
}

// respondDBError logs the underlying error and returns the generic
// persistence failure envelope. Internals never leak to clients.
func respondDBError(w http.ResponseWriter, op string, err error) {
	slog.Error("database operation failed", "op", op, "error", err)
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "")
}

// decodeJSON parses the request body into dst, enforcing a size cap.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MiB
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// urlID extracts and parses the {id} route parameter as a UUID.
func urlID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
