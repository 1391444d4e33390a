// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"hostwise/internal/service"
)

// IntakeHandler serves the public consulting-request form endpoint.
type IntakeHandler struct {
	intake *service.IntakeService
}

// NewIntakeHandler creates the intake handler.
func NewIntakeHandler(intake *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

// intakeResponse is the success payload for a stored request. Email
// delivery is best-effort; its outcome is reported, never fatal.
type intakeResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Data        intakeResponseData  `json:"data"`
	EmailStatus service.EmailStatus `json:"emailStatus"`
}

type intakeResponseData struct {
	RequestID   uuid.UUID `json:"requestId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Submit handles POST /api/service-request.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in service.IntakeRequest
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.intake.Submit(r.Context(), &in)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusBadRequest, apiError{
				Error:   "VALIDATION_ERROR",
				Details: verr.Details,
			})
		case errors.Is(err, service.ErrRateLimited):
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED",
				"a request from this email was submitted recently, please wait before retrying")
		default:
			respondDBError(w, "service request create", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, intakeResponse{
		Success: true,
		Message: "service request received",
		Data: intakeResponseData{
			RequestID:   result.Request.ID,
			SubmittedAt: result.Request.CreatedAt,
		},
		EmailStatus: result.EmailStatus,
	})
}
