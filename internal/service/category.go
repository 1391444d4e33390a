// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hostwise/internal/cache"
	"hostwise/internal/models"
)

// CategoryLister is the slice of the category store the aggregator needs.
type CategoryLister interface {
	ListByType(t models.PostType, activeOnly bool) ([]models.Category, error)
}

// PublishedLister fetches the full published-post set for a board.
type PublishedLister interface {
	ListPublishedByType(t models.PostType) ([]models.Post, error)
}

// CategoryAggregator computes per-category published-post counts for a
// board. Results are cached briefly in Redis; admin writes invalidate the
// board's entry.
type CategoryAggregator struct {
	categories CategoryLister
	posts      PublishedLister
	cache      *cache.BoardCache // optional
}

// NewCategoryAggregator creates an aggregator. cache may be nil.
func NewCategoryAggregator(categories CategoryLister, posts PublishedLister, boardCache *cache.BoardCache) *CategoryAggregator {
	return &CategoryAggregator{
		categories: categories,
		posts:      posts,
		cache:      boardCache,
	}
}

// CountsByType returns every active category of the board plus the
// synthetic "all" entry, each annotated with its published-post count.
// Categories with no matching posts appear with count 0. The "all" count
// is the total published-post count: posts without a category are
// excluded from per-category counts but included in "all".
func (a *CategoryAggregator) CountsByType(ctx context.Context, t models.PostType) ([]models.Category, error) {
	if a.cache != nil {
		if cached, ok := a.cache.GetCounts(ctx, t); ok {
			return cached, nil
		}
	}

	// Categories and the published-post set are independent; fetch them
	// concurrently and join before folding.
	var (
		categories []models.Category
		posts      []models.Post
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = a.categories.ListByType(t, true)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = a.posts.ListPublishedByType(t)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int)
	for _, p := range posts {
		if p.CategoryID != nil {
			counts[*p.CategoryID]++
		}
	}

	result := make([]models.Category, 0, len(categories)+1)
	result = append(result, models.AllCategory(t, len(posts)))
	for _, c := range categories {
		c.PostCount = counts[c.ID]
		result = append(result, c)
	}

	if a.cache != nil {
		a.cache.SetCounts(ctx, t, result)
	}
	return result, nil
}

// Invalidate drops the cached counts for a board. Called by admin
// handlers after any post or category write.
func (a *CategoryAggregator) Invalidate(ctx context.Context, t models.PostType) {
	if a.cache != nil {
		a.cache.Invalidate(ctx, t)
	}
}
