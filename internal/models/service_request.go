// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus tracks where a consulting request is in the admin workflow.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusContacted  RequestStatus = "contacted"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusContacted, RequestStatusInProgress, RequestStatusCompleted:
		return true
	}
	return false
}

// ServiceRequest is a consulting inquiry submitted through the public form.
// It is created with status "pending" and mutated only by admin status
// transitions afterwards.
type ServiceRequest struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	CompanyType *string   `json:"company_type,omitempty"`
	Location    string    `json:"location"`
	Scale       string    `json:"scale"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`

	// Services is the list of requested consulting areas, at least one.
	Services []string `json:"services"`

	CurrentChallenges *string `json:"current_challenges,omitempty"`
	DesiredOutcomes   *string `json:"desired_outcomes,omitempty"`
	Message           *string `json:"message,omitempty"`

	Status      RequestStatus `json:"status"`
	AdminNote   *string       `json:"admin_note,omitempty"`
	ProcessedBy *uuid.UUID    `json:"processed_by,omitempty"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
