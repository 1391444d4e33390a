// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"hostwise/internal/models"
)

// ErrRateLimited is returned when the same email submits again inside the
// configured cooldown window.
var ErrRateLimited = errors.New("submission rate limited")

// ValidationError carries every failed check of an intake payload so the
// caller can show all problems at once.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// RequestCreator is the slice of the service-request store intake needs.
type RequestCreator interface {
	Create(r *models.ServiceRequest) (*models.ServiceRequest, error)
}

// Mailer sends the transactional mails for a stored request. Both sends
// are best-effort: failures are reported, never fatal.
type Mailer interface {
	SendAdminNotification(ctx context.Context, req *models.ServiceRequest) error
	SendClientConfirmation(ctx context.Context, req *models.ServiceRequest) error
}

// SubmissionLimiter gates repeat submissions per contact email.
type SubmissionLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// IntakeRequest is the public consulting-request payload.
type IntakeRequest struct {
	CompanyName string   `json:"companyName" validate:"required"`
	CompanyType *string  `json:"companyType,omitempty"`
	Location    string   `json:"location" validate:"required"`
	Scale       string   `json:"scale" validate:"required"`
	Services    []string `json:"services" validate:"required,min=1"`

	ContactName  string `json:"contactName" validate:"required"`
	ContactPhone string `json:"contactPhone" validate:"required,phone"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`

	CurrentChallenges  *string `json:"currentChallenges,omitempty"`
	DesiredOutcomes    *string `json:"desiredOutcomes,omitempty"`
	AdditionalRequests *string `json:"additionalRequests,omitempty"`
}

// EmailStatus reports the best-effort notification outcomes.
type EmailStatus struct {
	AdminNotificationSent  bool `json:"adminNotificationSent"`
	ClientConfirmationSent bool `json:"clientConfirmationSent"`
}

// IntakeResult is the successful-submission response payload.
type IntakeResult struct {
	Request     *models.ServiceRequest
	EmailStatus EmailStatus
}

// phonePattern is deliberately loose: digits plus common separators.
var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{7,20}$`)

// IntakeService validates, persists, and announces consulting requests.
type IntakeService struct {
	requests RequestCreator
	mailer   Mailer // nil disables notifications
	limiter  SubmissionLimiter
	validate *validator.Validate
}

// NewIntakeService creates the intake service. mailer and limiter may be
// nil, which disables notifications and rate limiting respectively.
func NewIntakeService(requests RequestCreator, mailer Mailer, limiter SubmissionLimiter) *IntakeService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The phone check only rejects obvious garbage; formats differ too
	// much across countries for anything stricter.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &IntakeService{
		requests: requests,
		mailer:   mailer,
		limiter:  limiter,
		validate: v,
	}
}

// Submit runs the full intake flow: validate (collecting every failure),
// rate-limit by contact email, persist with status "pending", then send
// the notification mails best-effort. The stored request is the source of
// truth; email failure never rolls it back.
func (s *IntakeService) Submit(ctx context.Context, in *IntakeRequest) (*IntakeResult, error) {
	if details := s.collectValidationErrors(in); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, in.ContactEmail)
		if err != nil {
			// A broken limiter should not block intake; log and continue.
			slog.Warn("submission limiter unavailable", "error", err)
		} else if !ok {
			return nil, ErrRateLimited
		}
	}

	stored, err := s.requests.Create(&models.ServiceRequest{
		CompanyName:       strings.TrimSpace(in.CompanyName),
		CompanyType:       in.CompanyType,
		Location:          strings.TrimSpace(in.Location),
		Scale:             strings.TrimSpace(in.Scale),
		ContactName:       strings.TrimSpace(in.ContactName),
		ContactPhone:      strings.TrimSpace(in.ContactPhone),
		ContactEmail:      strings.ToLower(strings.TrimSpace(in.ContactEmail)),
		Services:          in.Services,
		CurrentChallenges: in.CurrentChallenges,
		DesiredOutcomes:   in.DesiredOutcomes,
		Message:           in.AdditionalRequests,
	})
	if err != nil {
		return nil, fmt.Errorf("persist service request: %w", err)
	}

	result := &IntakeResult{Request: stored}
	if s.mailer != nil {
		if err := s.mailer.SendAdminNotification(ctx, stored); err != nil {
			slog.Error("admin notification failed", "request_id", stored.ID, "error", err)
		} else {
			result.EmailStatus.AdminNotificationSent = true
		}
		if err := s.mailer.SendClientConfirmation(ctx, stored); err != nil {
			slog.Error("client confirmation failed", "request_id", stored.ID, "error", err)
		} else {
			result.EmailStatus.ClientConfirmationSent = true
		}
	}

	return result, nil
}

// collectValidationErrors returns one human-readable detail per failed
// check, never stopping at the first.
func (s *IntakeService) collectValidationErrors(in *IntakeRequest) []string {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid request payload"}
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, detailFor(fe))
	}
	return details
}

// detailFor renders a single field error as the client-facing message.
func detailFor(fe validator.FieldError) string {
	field := fieldNames[fe.StructField()]
	if field == "" {
		field = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return "at least one service must be selected"
	case "email":
		return "contactEmail must be a valid email address"
	case "phone":
		return "contactPhone must be a valid phone number"
	default:
		return field + " is invalid"
	}
}

// fieldNames maps struct fields to their JSON names for error messages.
var fieldNames = map[string]string{
	"CompanyName":  "companyName",
	"Location":     "location",
	"Scale":        "scale",
	"Services":     "services",
	"ContactName":  "contactName",
	"ContactPhone": "contactPhone",
	"ContactEmail": "contactEmail",
}
