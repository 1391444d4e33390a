// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"html"

	"github.com/google/uuid"

	"hostwise/internal/markdown"
	"hostwise/internal/models"
)

// PlaceholderImage substitutes for posts that have no image set.
const PlaceholderImage = "/images/placeholder.svg"

// PostReader is the slice of the post store the board adapter needs for
// single-post fetches.
type PostReader interface {
	FindByID(id uuid.UUID) (*models.Post, error)
	IncrementViews(id uuid.UUID) (int, error)
}

// PostView is a presentation-shaped post: calendar-day date, guaranteed
// image URL, and Markdown-rendered HTML body. Page components consume
// this shape instead of the storage schema.
type PostView struct {
	ID           uuid.UUID       `json:"id"`
	Type         models.PostType `json:"post_type"`
	Title        string          `json:"title"`
	HTML         string          `json:"html"`
	Excerpt      string          `json:"excerpt"`
	ImageURL     string          `json:"image_url"`
	Slug         string          `json:"slug"`
	Tags         []string        `json:"tags"`
	CategoryName string          `json:"category_name"`
	Date         string          `json:"date"` // YYYY-MM-DD

	ClientName     string `json:"client_name,omitempty"`
	ClientCompany  string `json:"client_company,omitempty"`
	ClientPosition string `json:"client_position,omitempty"`
	Rating         int    `json:"rating,omitempty"`

	ViewCount int `json:"view_count"`
}

// BoardPage is a page of presentation-shaped posts.
type BoardPage struct {
	Posts      []PostView `json:"posts"`
	Total      int        `json:"total"`
	TotalPages int        `json:"totalPages"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// BoardService adapts persistence posts into presentation posts. Errors
// are not swallowed here: a single-post fetch distinguishes found,
// absent (nil, nil), and failed, and the transport layer maps each
// accordingly.
type BoardService struct {
	query *PostQueryService
	posts PostReader
}

// NewBoardService creates the adapter over the query service and store.
func NewBoardService(query *PostQueryService, posts PostReader) *BoardService {
	return &BoardService{query: query, posts: posts}
}

// List returns a page of presentation posts for the board. Listings only
// ever expose published posts.
func (b *BoardService) List(q BoardQuery) (*BoardPage, error) {
	published := models.PostStatusPublished
	q.Status = &published

	page, err := b.query.Query(q)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(page.Posts))
	for i := range page.Posts {
		views = append(views, toView(&page.Posts[i], false))
	}
	return &BoardPage{
		Posts:      views,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Limit:      page.Limit,
	}, nil
}

// Get fetches a single published post, bumping its view counter. The
// returned view count reflects the post-increment value, so the caller
// reads its own write. Returns (nil, nil) when the post does not exist
// or is not published.
func (b *BoardService) Get(id uuid.UUID) (*PostView, error) {
	post, err := b.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished() {
		return nil, nil
	}

	views, err := b.posts.IncrementViews(id)
	if err != nil {
		return nil, err
	}
	post.ViewCount = views

	view := toView(post, true)
	return &view, nil
}

// toView maps a persistence post into presentation shape. renderBody
// controls whether the Markdown body is converted to HTML (detail view)
// or omitted (listings carry only the excerpt).
func toView(p *models.Post, renderBody bool) PostView {
	v := PostView{
		ID:        p.ID,
		Type:      p.Type,
		Title:     p.Title,
		Slug:      p.Slug,
		Tags:      p.Tags,
		ViewCount: p.ViewCount,
		ImageURL:  PlaceholderImage,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		v.ImageURL = *p.ImageURL
	}
	if p.Excerpt != nil {
		v.Excerpt = *p.Excerpt
	}
	if p.CategoryName != nil {
		v.CategoryName = *p.CategoryName
	}
	if p.ClientName != nil {
		v.ClientName = *p.ClientName
	}
	if p.ClientCompany != nil {
		v.ClientCompany = *p.ClientCompany
	}
	if p.ClientPosition != nil {
		v.ClientPosition = *p.ClientPosition
	}
	if p.Rating != nil {
		v.Rating = *p.Rating
	}

	// Date is truncated to calendar-day granularity. Drafts surface the
	// creation date; published posts their publication date.
	when := p.CreatedAt
	if p.PublishedAt != nil {
		when = *p.PublishedAt
	}
	v.Date = when.Format("2006-01-02")

	if renderBody {
		rendered, err := markdown.ToHTML(p.Content)
		if err != nil {
			// Keep the detail view usable. Never emit the raw body unescaped.
			rendered = "<pre>" + html.EscapeString(p.Content) + "</pre>"
		}
		v.HTML = rendered
	}
	return v
}
