// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the application logic between the HTTP handlers
// and the stores: board queries with search fallback, category
// aggregation, the presentation adapter, and service-request intake.
package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hostwise/internal/models"
	"hostwise/internal/store"
)

// PostLister is the slice of the post store the query service needs.
type PostLister interface {
	List(f store.PostFilter) ([]models.Post, error)
	Count(f store.PostFilter) (int, error)
}

// BoardQuery is the composite filter unit for a board listing. Page is
// 1-based; a zero Limit falls back to DefaultPageSize.
type BoardQuery struct {
	Type       models.PostType
	CategoryID *uuid.UUID
	Status     *models.PostStatus
	Search     string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string // "asc" or "desc"; anything else means desc
}

// DefaultPageSize is the page size applied when the caller sends none.
const DefaultPageSize = 10

// PostPage is one page of board results with pagination totals.
type PostPage struct {
	Posts      []models.Post `json:"posts"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

// PostQueryService builds filtered, sorted, paginated board queries.
// Listings without a search term paginate in SQL; a search term switches
// to the fallback path, which fetches the filtered set (capped at
// fetchCap) and re-filters in memory so that tags participate in the
// match, since the SQL layer cannot search the tag list.
type PostQueryService struct {
	posts    PostLister
	fetchCap int
}

// NewPostQueryService creates a query service. fetchCap bounds the
// fallback fetch; <= 0 selects a conservative default.
func NewPostQueryService(posts PostLister, fetchCap int) *PostQueryService {
	if fetchCap <= 0 {
		fetchCap = 2000
	}
	return &PostQueryService{posts: posts, fetchCap: fetchCap}
}

// Query returns one page of posts with total counts. A query matching
// nothing returns an empty page with Total 0, never an error.
func (s *PostQueryService) Query(q BoardQuery) (*PostPage, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	f := store.PostFilter{
		Type:       q.Type,
		CategoryID: q.CategoryID,
		Status:     q.Status,
		SortBy:     q.SortBy,
		Ascending:  strings.EqualFold(q.SortOrder, "asc"),
	}

	if strings.TrimSpace(q.Search) == "" {
		return s.queryPaged(f, page, limit)
	}
	return s.querySearch(f, q.Search, page, limit)
}

// queryPaged is the plain path: sort and paginate in SQL, with a
// separate count query for the total.
func (s *PostQueryService) queryPaged(f store.PostFilter, page, limit int) (*PostPage, error) {
	total, err := s.posts.Count(f)
	if err != nil {
		return nil, err
	}

	f.Limit = limit
	f.Offset = (page - 1) * limit
	posts, err := s.posts.List(f)
	if err != nil {
		return nil, err
	}

	return newPostPage(posts, total, page, limit), nil
}

// querySearch is the fallback path: fetch the filtered set without
// pagination, match the term against title, content, excerpt, or any
// tag, sort with explicit comparators, and paginate the result in memory.
func (s *PostQueryService) querySearch(f store.PostFilter, term string, page, limit int) (*PostPage, error) {
	unpaged := f
	unpaged.Limit = s.fetchCap
	unpaged.Offset = 0

	posts, err := s.posts.List(unpaged)
	if err != nil {
		return nil, err
	}

	matched := posts[:0:0]
	for _, p := range posts {
		if matchesSearch(&p, term) {
			matched = append(matched, p)
		}
	}

	sortPosts(matched, f.SortBy, f.Ascending)

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return newPostPage(matched[start:end], total, page, limit), nil
}

// matchesSearch reports whether the post matches the term by
// case-insensitive substring over title, content, excerpt, or any tag.
func matchesSearch(p *models.Post, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Content), term) {
		return true
	}
	if p.Excerpt != nil && strings.Contains(strings.ToLower(*p.Excerpt), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortPosts orders posts with an explicit per-field comparator. Mixed-type
// coercion is never used; unknown sort keys fall back to created_at.
// The sort is stable with a final tiebreak on ID so repeated queries page
// identically.
func sortPosts(posts []models.Post, sortBy string, ascending bool) {
	less := comparatorFor(sortBy)
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := &posts[i], &posts[j]
		switch less(a, b) {
		case -1:
			return ascending
		case 1:
			return !ascending
		default:
			return a.ID.String() < b.ID.String()
		}
	})
}

// comparatorFor returns a three-way comparator for a sort key.
func comparatorFor(sortBy string) func(a, b *models.Post) int {
	switch sortBy {
	case "title":
		return func(a, b *models.Post) int {
			return strings.Compare(a.Title, b.Title)
		}
	case "view_count":
		return func(a, b *models.Post) int {
			return compareInt(a.ViewCount, b.ViewCount)
		}
	case "rating":
		return func(a, b *models.Post) int {
			return compareIntPtr(a.Rating, b.Rating)
		}
	case "published_at":
		return func(a, b *models.Post) int {
			return compareTimePtr(a.PublishedAt, b.PublishedAt)
		}
	default: // created_at
		return func(a, b *models.Post) int {
			if a.CreatedAt.Before(b.CreatedAt) {
				return -1
			}
			if a.CreatedAt.After(b.CreatedAt) {
				return 1
			}
			return 0
		}
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareIntPtr treats a nil rating as larger than any set rating.
func compareIntPtr(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return compareInt(*a, *b)
	}
}

// compareTimePtr treats a nil timestamp as larger than any set one.
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}

// normalizePage clamps page and limit to sane values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return page, limit
}

// newPostPage assembles a PostPage, computing the page count and making
// sure Posts is never nil in the JSON output.
func newPostPage(posts []models.Post, total, page, limit int) *PostPage {
	if posts == nil {
		posts = []models.Post{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &PostPage{
		Posts:      posts,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}
}
