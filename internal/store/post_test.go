// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostwise/internal/models"
)

var postRowColumns = []string{
	"id", "post_type", "title", "content", "excerpt", "image_url", "slug",
	"tags", "status", "category_id", "name",
	"client_name", "client_company", "client_position", "rating",
	"view_count", "published_at", "created_at", "updated_at",
}

func postRow(id uuid.UUID, title string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(postRowColumns).AddRow(
		id, "insights", title, "content", nil, nil, "slug",
		[]byte(`["market"]`), "published", nil, nil,
		nil, nil, nil, nil,
		0, now, now, now,
	)
}

func TestPostFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM posts p LEFT JOIN categories c`).
		WithArgs(id).
		WillReturnRows(postRow(id, "Q1 report"))

	post, err := NewPostStore(db).FindByID(id)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Q1 report", post.Title)
	assert.Equal(t, []string{"market"}, post.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM posts p LEFT JOIN categories c`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	post, err := NewPostStore(db).FindByID(id)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestPostListOrderByWhitelist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The whitelisted key maps to its column with the ID tiebreak.
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.view_count DESC, p.id`)).
		WithArgs("insights").
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err = NewPostStore(db).List(PostFilter{
		Type:   models.PostTypeInsights,
		SortBy: "view_count",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListUnknownSortFallsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// An unlisted sort key must never reach the SQL; created_at is used.
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.created_at DESC, p.id`)).
		WithArgs("insights").
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err = NewPostStore(db).List(PostFilter{
		Type:   models.PostTypeInsights,
		SortBy: "p.title; DROP TABLE posts",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostCreateRejectsBoardMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	catID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT post_type FROM categories WHERE id = $1`)).
		WithArgs(catID).
		WillReturnRows(sqlmock.NewRows([]string{"post_type"}).AddRow("events"))

	_, err = NewPostStore(db).Create(&models.Post{
		Type:       models.PostTypeInsights,
		Title:      "mismatched",
		Status:     models.PostStatusDraft,
		CategoryID: &catID,
	})
	assert.ErrorIs(t, err, ErrCategoryBoardMismatch)
	// No INSERT may have been attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostIncrementViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts SET view_count = view_count + 1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"view_count"}).AddRow(42))

	count, err := NewPostStore(db).IncrementViews(id)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestPostIncrementViewsMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE posts SET view_count = view_count + 1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"view_count"}))

	count, err := NewPostStore(db).IncrementViews(id)
	require.NoError(t, err)
	assert.Zero(t, count)
}
