// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"hostwise/internal/models"
)

// PartnerStore manages partner companies in the database.
type PartnerStore struct {
	db *sql.DB
}

// NewPartnerStore returns a new PartnerStore.
func NewPartnerStore(db *sql.DB) *PartnerStore {
	return &PartnerStore{db: db}
}

const partnerColumns = `id, name, logo_url, is_active, display_order, created_at, updated_at`

func scanPartner(scanner interface{ Scan(...any) error }) (*models.Partner, error) {
	var p models.Partner
	err := scanner.Scan(
		&p.ID, &p.Name, &p.LogoURL, &p.IsActive,
		&p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all partners ordered for display. activeOnly restricts the
// result to active partners (the public view).
func (s *PartnerStore) List(activeOnly bool) ([]models.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var items []models.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a partner by ID. Returns nil if not found.
func (s *PartnerStore) FindByID(id uuid.UUID) (*models.Partner, error) {
	row := s.db.QueryRow(`SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id)
	p, err := scanPartner(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find partner by id: %w", err)
	}
	return p, nil
}

// Create inserts a new partner and returns it.
func (s *PartnerStore) Create(p *models.Partner) (*models.Partner, error) {
	row := s.db.QueryRow(`
		INSERT INTO partners (name, logo_url, is_active, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+partnerColumns,
		p.Name, p.LogoURL, p.IsActive, p.DisplayOrder,
	)
	result, err := scanPartner(row)
	if err != nil {
		return nil, fmt.Errorf("create partner: %w", err)
	}
	return result, nil
}

// Update modifies an existing partner.
func (s *PartnerStore) Update(p *models.Partner) error {
	_, err := s.db.Exec(`
		UPDATE partners SET
			name = $1, logo_url = $2, is_active = $3, display_order = $4,
			updated_at = NOW()
		WHERE id = $5
	`, p.Name, p.LogoURL, p.IsActive, p.DisplayOrder, p.ID)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	return nil
}

// Delete removes a partner by ID.
func (s *PartnerStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	return nil
}
