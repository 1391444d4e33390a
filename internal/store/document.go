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

// DocumentStore manages company-introduction files in the database.
// The files themselves live in S3; rows here are metadata.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore returns a new DocumentStore.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, name, size_bytes, mime_type, s3_key, url, uploaded_at`

func scanDocument(scanner interface{ Scan(...any) error }) (*models.Document, error) {
	var d models.Document
	err := scanner.Scan(
		&d.ID, &d.Name, &d.SizeBytes, &d.MimeType, &d.S3Key, &d.URL, &d.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a document row and returns it.
func (s *DocumentStore) Create(d *models.Document) (*models.Document, error) {
	row := s.db.QueryRow(`
		INSERT INTO documents (name, size_bytes, mime_type, s3_key, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+documentColumns,
		d.Name, d.SizeBytes, d.MimeType, d.S3Key, d.URL,
	)
	result, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return result, nil
}

// Latest returns the most recently uploaded document, which is the one
// exposed for public download. Returns nil when none exist.
func (s *DocumentStore) Latest() (*models.Document, error) {
	row := s.db.QueryRow(`SELECT ` + documentColumns + ` FROM documents ORDER BY uploaded_at DESC, id LIMIT 1`)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest document: %w", err)
	}
	return d, nil
}

// List returns all documents, newest first.
func (s *DocumentStore) List() ([]models.Document, error) {
	rows, err := s.db.Query(`SELECT ` + documentColumns + ` FROM documents ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var items []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// FindByID retrieves a document by ID. Returns nil if not found.
func (s *DocumentStore) FindByID(id uuid.UUID) (*models.Document, error) {
	row := s.db.QueryRow(`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

// Delete removes a document row by ID.
func (s *DocumentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
