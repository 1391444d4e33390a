// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PostType is the board a post belongs to. The three boards are fixed at
// the application level and are distinct from the Category entity.
type PostType string

const (
	PostTypeInsights     PostType = "insights"
	PostTypeEvents       PostType = "events"
	PostTypeTestimonials PostType = "testimonials"
)

// Valid reports whether t is one of the three known boards.
func (t PostType) Valid() bool {
	switch t {
	case PostTypeInsights, PostTypeEvents, PostTypeTestimonials:
		return true
	}
	return false
}

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a single board entry. Testimonial posts additionally carry the
// reviewer fields (ClientName, ClientCompany, ClientPosition, Rating);
// they are nullable for the other two boards.
type Post struct {
	ID       uuid.UUID  `json:"id"`
	Type     PostType   `json:"post_type"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Excerpt  *string    `json:"excerpt,omitempty"`
	ImageURL *string    `json:"image_url,omitempty"`
	Slug     string     `json:"slug"`
	Tags     []string   `json:"tags"`
	Status   PostStatus `json:"status"`

	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	// CategoryName is a virtual field populated from the category join.
	CategoryName *string `json:"category_name,omitempty"`

	ClientName     *string `json:"client_name,omitempty"`
	ClientCompany  *string `json:"client_company,omitempty"`
	ClientPosition *string `json:"client_position,omitempty"`
	Rating         *int    `json:"rating,omitempty"`

	ViewCount   int        `json:"view_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// HasTag reports whether the post carries the given tag (exact match).
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
