// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hostwise/internal/models"
)

// ServiceRequestStore manages consulting requests in the database.
type ServiceRequestStore struct {
	db *sql.DB
}

// NewServiceRequestStore returns a new ServiceRequestStore.
func NewServiceRequestStore(db *sql.DB) *ServiceRequestStore {
	return &ServiceRequestStore{db: db}
}

const requestColumns = `id, company_name, company_type, location, scale,
	       contact_name, contact_phone, contact_email, services,
	       current_challenges, desired_outcomes, message,
	       status, admin_note, processed_by, processed_at, created_at, updated_at`

func scanRequest(scanner interface{ Scan(...any) error }) (*models.ServiceRequest, error) {
	var r models.ServiceRequest
	var services []byte
	err := scanner.Scan(
		&r.ID, &r.CompanyName, &r.CompanyType, &r.Location, &r.Scale,
		&r.ContactName, &r.ContactPhone, &r.ContactEmail, &services,
		&r.CurrentChallenges, &r.DesiredOutcomes, &r.Message,
		&r.Status, &r.AdminNote, &r.ProcessedBy, &r.ProcessedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(services, &r.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return &r, nil
}

// Create inserts a validated request with a server-generated ID and
// status "pending", and returns the stored row.
func (s *ServiceRequestStore) Create(r *models.ServiceRequest) (*models.ServiceRequest, error) {
	services, err := encodeStrings(r.Services)
	if err != nil {
		return nil, fmt.Errorf("encode services: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO service_requests (company_name, company_type, location, scale,
		                              contact_name, contact_phone, contact_email,
		                              services, current_challenges, desired_outcomes, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+requestColumns,
		r.CompanyName, r.CompanyType, r.Location, r.Scale,
		r.ContactName, r.ContactPhone, r.ContactEmail,
		services, r.CurrentChallenges, r.DesiredOutcomes, r.Message,
	)
	result, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}
	return result, nil
}

// FindByID retrieves a request by ID. Returns nil if not found.
func (s *ServiceRequestStore) FindByID(id uuid.UUID) (*models.ServiceRequest, error) {
	row := s.db.QueryRow(`SELECT `+requestColumns+` FROM service_requests WHERE id = $1`, id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service request: %w", err)
	}
	return r, nil
}

// List returns requests newest first, optionally filtered by status,
// paginated with limit/offset.
func (s *ServiceRequestStore) List(status *models.RequestStatus, limit, offset int) ([]models.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests`
	var args []any
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status = $1`
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	defer rows.Close()

	var items []models.ServiceRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service request: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Count returns the number of requests, optionally filtered by status.
func (s *ServiceRequestStore) Count(status *models.RequestStatus) (int, error) {
	query := `SELECT COUNT(*) FROM service_requests`
	var args []any
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status = $1`
	}
	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count service requests: %w", err)
	}
	return count, nil
}

// UpdateStatus transitions a request through the admin workflow, recording
// who processed it and when.
func (s *ServiceRequestStore) UpdateStatus(id uuid.UUID, status models.RequestStatus, adminNote *string, processedBy uuid.UUID) error {
	now := time.Now()
	_, err := s.db.Exec(`
		UPDATE service_requests SET
			status = $1, admin_note = $2, processed_by = $3, processed_at = $4,
			updated_at = NOW()
		WHERE id = $5
	`, status, adminNote, processedBy, now, id)
	if err != nil {
		return fmt.Errorf("update service request status: %w", err)
	}
	return nil
}
