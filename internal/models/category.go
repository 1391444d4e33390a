// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AllCategoryName is the display name of the synthetic "all posts"
// pseudo-category returned by the aggregation service.
const AllCategoryName = "전체"

// Category is a named, orderable grouping within a single board.
// A post holds a weak reference (by ID) to at most one category, and the
// category's board must match the post's board.
type Category struct {
	ID           uuid.UUID `json:"id"`
	Type         PostType  `json:"post_type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// PostCount is a virtual field populated by the aggregation service.
	PostCount int `json:"post_count"`
}

// AllCategory returns the synthetic pseudo-category whose count covers
// every published post of the board, including posts with no category.
func AllCategory(t PostType, count int) Category {
	return Category{
		Type:      t,
		Name:      AllCategoryName,
		IsActive:  true,
		PostCount: count,
	}
}
