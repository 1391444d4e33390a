// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostwise/internal/models"
)

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts WHERE category_id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err = NewCategoryStore(db).Delete(id)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	// The DELETE must never run.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteUnused(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts WHERE category_id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewCategoryStore(db).Delete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryListByTypeActiveOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE post_type = \$1 AND is_active ORDER BY display_order, name`).
		WithArgs("insights").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "post_type", "name", "description", "display_order", "is_active", "created_at", "updated_at",
		}))

	_, err = NewCategoryStore(db).ListByType(models.PostTypeInsights, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryNextDisplayOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(display_order) FROM categories`)).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(3))

	next, err := NewCategoryStore(db).NextDisplayOrder(models.PostTypeEvents)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func TestCategoryNextDisplayOrderEmptyBoard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(display_order) FROM categories`)).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	next, err := NewCategoryStore(db).NextDisplayOrder(models.PostTypeEvents)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}
