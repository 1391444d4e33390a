// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"hostwise/internal/models"
)

type fakeCategoryLister struct {
	categories []models.Category
	err        error
}

func (f *fakeCategoryLister) ListByType(t models.PostType, activeOnly bool) ([]models.Category, error) {
	return f.categories, f.err
}

type fakePublishedLister struct {
	posts []models.Post
	err   error
}

func (f *fakePublishedLister) ListPublishedByType(t models.PostType) ([]models.Post, error) {
	return f.posts, f.err
}

func TestCountsByType(t *testing.T) {
	marketAnalysis := models.Category{ID: uuid.New(), Type: models.PostTypeInsights, Name: "Market Analysis"}
	operations := models.Category{ID: uuid.New(), Type: models.PostTypeInsights, Name: "Operations"}

	uncategorized := makePost("loose post", nil, time.Now())
	inMarket1 := makePost("report q1", nil, time.Now())
	inMarket1.CategoryID = &marketAnalysis.ID
	inMarket2 := makePost("report q2", nil, time.Now())
	inMarket2.CategoryID = &marketAnalysis.ID

	agg := NewCategoryAggregator(
		&fakeCategoryLister{categories: []models.Category{marketAnalysis, operations}},
		&fakePublishedLister{posts: []models.Post{uncategorized, inMarket1, inMarket2}},
		nil,
	)

	cats, err := agg.CountsByType(context.Background(), models.PostTypeInsights)
	if err != nil {
		t.Fatal(err)
	}

	if len(cats) != 3 {
		t.Fatalf("expected all-entry + 2 categories, got %d", len(cats))
	}

	// The synthetic all-posts entry leads and counts every published
	// post, including the uncategorized one.
	if cats[0].Name != models.AllCategoryName {
		t.Errorf("first entry = %q, want %q", cats[0].Name, models.AllCategoryName)
	}
	if cats[0].PostCount != 3 {
		t.Errorf("all-entry count = %d, want 3", cats[0].PostCount)
	}

	if cats[1].Name != "Market Analysis" || cats[1].PostCount != 2 {
		t.Errorf("Market Analysis count = %d, want 2", cats[1].PostCount)
	}
	if cats[2].Name != "Operations" || cats[2].PostCount != 0 {
		t.Errorf("zero-post category must appear with count 0, got %d", cats[2].PostCount)
	}
}

func TestCountsByTypeEmptyBoard(t *testing.T) {
	agg := NewCategoryAggregator(&fakeCategoryLister{}, &fakePublishedLister{}, nil)

	cats, err := agg.CountsByType(context.Background(), models.PostTypeEvents)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 1 {
		t.Fatalf("expected only the all-entry, got %d entries", len(cats))
	}
	if cats[0].PostCount != 0 {
		t.Errorf("all-entry count = %d, want 0", cats[0].PostCount)
	}
}

func TestCountsByTypePropagatesErrors(t *testing.T) {
	wantErr := errors.New("connection refused")
	agg := NewCategoryAggregator(
		&fakeCategoryLister{err: wantErr},
		&fakePublishedLister{},
		nil,
	)

	if _, err := agg.CountsByType(context.Background(), models.PostTypeInsights); !errors.Is(err, wantErr) {
		t.Errorf("expected the lister error, got %v", err)
	}
}
