// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Hostwise
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hostwise/internal/models"
)

// ErrCategoryBoardMismatch is returned when a post references a category
// that belongs to a different board.
var ErrCategoryBoardMismatch = fmt.Errorf("category belongs to a different board")

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns lists the columns selected for every post query, including
// the category display name from the join.
const postColumns = `p.id, p.post_type, p.title, p.content, p.excerpt, p.image_url, p.slug,
	       p.tags, p.status, p.category_id, c.name,
	       p.client_name, p.client_company, p.client_position, p.rating,
	       p.view_count, p.published_at, p.created_at, p.updated_at`

const postFrom = ` FROM posts p LEFT JOIN categories c ON c.id = p.category_id`

// PostFilter narrows post queries. Zero values mean "no constraint";
// Limit <= 0 disables pagination entirely (used by the in-memory search
// fallback and the aggregation service).
type PostFilter struct {
	Type       models.PostType
	CategoryID *uuid.UUID
	Status     *models.PostStatus
	SortBy     string // whitelisted column key; defaults to created_at
	Ascending  bool
	Limit      int
	Offset     int
}

// sortColumns whitelists the sortable fields and maps them to columns.
var sortColumns = map[string]string{
	"created_at":   "p.created_at",
	"published_at": "p.published_at",
	"view_count":   "p.view_count",
	"title":        "p.title",
	"rating":       "p.rating",
}

// where builds the WHERE clause and argument list for a filter.
func (f PostFilter) where() (string, []any) {
	clauses := []string{"p.post_type = $1"}
	args := []any{f.Type}

	if f.Status != nil {
		args = append(args, *f.Status)
		clauses = append(clauses, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderBy builds a deterministic ORDER BY clause. The post ID is always
// appended as a tiebreaker so repeated queries page identically. NULL
// ordering follows the Postgres default (null sorts as the largest
// value), which the in-memory search path mirrors.
func (f PostFilter) orderBy() string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "p.created_at"
	}
	dir := "DESC"
	if f.Ascending {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, p.id", col, dir)
}

// List returns posts matching the filter, joined to their category for
// display-name enrichment.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	where, args := f.where()
	query := `SELECT ` + postColumns + postFrom + where + f.orderBy()
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Count returns the number of posts matching the filter, ignoring pagination.
func (s *PostStore) Count(f PostFilter) (int, error) {
	where, args := f.where()
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postFrom+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID.
// The category, when set, must belong to the post's board.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	if err := s.checkCategoryBoard(p); err != nil {
		return nil, err
	}

	// If publishing, set the published_at timestamp.
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	tags, err := encodeStrings(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO posts (post_type, title, content, excerpt, image_url, slug, tags,
		                   status, category_id, client_name, client_company,
		                   client_position, rating, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, p.Type, p.Title, p.Content, p.Excerpt, p.ImageURL, p.Slug, tags,
		p.Status, p.CategoryID, p.ClientName, p.ClientCompany,
		p.ClientPosition, p.Rating, p.PublishedAt,
	)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing post. Concurrent edits are last-write-wins;
// there is no version compare-and-swap on posts.
func (s *PostStore) Update(p *models.Post) error {
	if err := s.checkCategoryBoard(p); err != nil {
		return err
	}

	// If transitioning to published and no published_at set, set it now.
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	tags, err := encodeStrings(p.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			title = $1, content = $2, excerpt = $3, image_url = $4, slug = $5,
			tags = $6, status = $7, category_id = $8, client_name = $9,
			client_company = $10, client_position = $11, rating = $12,
			published_at = $13, updated_at = NOW()
		WHERE id = $14
	`, p.Title, p.Content, p.Excerpt, p.ImageURL, p.Slug,
		tags, p.Status, p.CategoryID, p.ClientName,
		p.ClientCompany, p.ClientPosition, p.Rating,
		p.PublishedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// IncrementViews atomically bumps the view counter and returns the new
// value, so a reader observes its own increment even under concurrency.
func (s *PostStore) IncrementViews(id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return count, nil
}

// ListPublishedByType returns every published post of the given board,
// newest first. Used by the aggregation service.
func (s *PostStore) ListPublishedByType(t models.PostType) ([]models.Post, error) {
	status := models.PostStatusPublished
	return s.List(PostFilter{Type: t, Status: &status, SortBy: "published_at"})
}

// CountByCategory returns the number of posts referencing the category.
// Used to refuse deleting a category that is still in use.
func (s *PostStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by category: %w", err)
	}
	return count, nil
}

// checkCategoryBoard enforces the board invariant: a post's category,
// when present, must belong to the same board as the post. The schema
// does not enforce this, so the store does.
func (s *PostStore) checkCategoryBoard(p *models.Post) error {
	if p.CategoryID == nil {
		return nil
	}
	var catType models.PostType
	err := s.db.QueryRow(`SELECT post_type FROM categories WHERE id = $1`, *p.CategoryID).Scan(&catType)
	if err == sql.ErrNoRows {
		return fmt.Errorf("category %s not found", *p.CategoryID)
	}
	if err != nil {
		return fmt.Errorf("check category board: %w", err)
	}
	if catType != p.Type {
		return ErrCategoryBoardMismatch
	}
	return nil
}

// scanPost scans a row (QueryRow or rows.Next) into a Post.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var tags []byte
	err := scanner.Scan(
		&p.ID, &p.Type, &p.Title, &p.Content, &p.Excerpt, &p.ImageURL, &p.Slug,
		&tags, &p.Status, &p.CategoryID, &p.CategoryName,
		&p.ClientName, &p.ClientCompany, &p.ClientPosition, &p.Rating,
		&p.ViewCount, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &p, nil
}

// encodeStrings marshals a string slice for a JSONB column, mapping nil
// to an empty array rather than SQL NULL.
func encodeStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}
