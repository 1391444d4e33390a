// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hostwise/internal/models"
	"hostwise/internal/service"
	"hostwise/internal/store"
)

type stubPostBackend struct {
	posts []models.Post
}

func (s *stubPostBackend) List(f store.PostFilter) ([]models.Post, error) {
	return s.posts, nil
}

func (s *stubPostBackend) Count(f store.PostFilter) (int, error) {
	return len(s.posts), nil
}

func (s *stubPostBackend) FindByID(id uuid.UUID) (*models.Post, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			clone := s.posts[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *stubPostBackend) IncrementViews(id uuid.UUID) (int, error) {
	return 1, nil
}

func newPublicHandler(backend *stubPostBackend) *PublicHandler {
	query := service.NewPostQueryService(backend, 0)
	board := service.NewBoardService(query, backend)
	return NewPublicHandler(board, nil, nil, nil, nil)
}

func publishedPost(title string) models.Post {
	now := time.Now()
	return models.Post{
		ID:          uuid.New(),
		Type:        models.PostTypeInsights,
		Title:       title,
		Content:     "body",
		Status:      models.PostStatusPublished,
		PublishedAt: &now,
		CreatedAt:   now,
	}
}

func TestPublicListPosts(t *testing.T) {
	h := newPublicHandler(&stubPostBackend{posts: []models.Post{publishedPost("hello")}})

	req := httptest.NewRequest(http.MethodGet, "/api/posts?type=insights", nil)
	rec := httptest.NewRecorder()
	h.ListPosts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var page service.BoardPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Posts) != 1 {
		t.Errorf("expected a single post, got total %d", page.Total)
	}
	if page.Posts[0].ImageURL != service.PlaceholderImage {
		t.Errorf("expected placeholder image, got %q", page.Posts[0].ImageURL)
	}
}

func TestPublicListPostsRejectsBadType(t *testing.T) {
	h := newPublicHandler(&stubPostBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/posts?type=news", nil)
	rec := httptest.NewRecorder()
	h.ListPosts(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_TYPE") {
		t.Errorf("expected INVALID_TYPE, got %q", rec.Body.String())
	}
}

func TestPublicListPostsRejectsBadCategory(t *testing.T) {
	h := newPublicHandler(&stubPostBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/posts?type=insights&category=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.ListPosts(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPublicGetPost(t *testing.T) {
	post := publishedPost("detail")
	h := newPublicHandler(&stubPostBackend{posts: []models.Post{post}})

	r := chi.NewRouter()
	r.Get("/api/posts/{id}", h.GetPost)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+post.ID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view service.PostView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Title != "detail" {
		t.Errorf("Title = %q", view.Title)
	}
	if view.ViewCount != 1 {
		t.Errorf("ViewCount = %d, want the incremented value", view.ViewCount)
	}
}

func TestPublicGetPostNotFound(t *testing.T) {
	h := newPublicHandler(&stubPostBackend{})

	r := chi.NewRouter()
	r.Get("/api/posts/{id}", h.GetPost)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPublicGetPostBadID(t *testing.T) {
	h := newPublicHandler(&stubPostBackend{})

	r := chi.NewRouter()
	r.Get("/api/posts/{id}", h.GetPost)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
