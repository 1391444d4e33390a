// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"hostwise/internal/models"
	"hostwise/internal/service"
	"hostwise/internal/store"
)

// PublicHandler serves the read-only endpoints consumed by the
// marketing frontend.
type PublicHandler struct {
	boards     *service.BoardService
	categories *service.CategoryAggregator
	partners   *store.PartnerStore
	documents  *store.DocumentStore
	db         *sql.DB
}

// NewPublicHandler creates the public handler.
func NewPublicHandler(
	boards *service.BoardService,
	categories *service.CategoryAggregator,
	partners *store.PartnerStore,
	documents *store.DocumentStore,
	db *sql.DB,
) *PublicHandler {
	return &PublicHandler{
		boards:     boards,
		categories: categories,
		partners:   partners,
		documents:  documents,
		db:         db,
	}
}

// ListPosts handles GET /api/posts. Listings degrade to an empty page
// on a backend failure so a database hiccup never blanks the site.
func (h *PublicHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q, errCode := boardQueryFromRequest(r)
	if errCode != "" {
		respondError(w, http.StatusBadRequest, errCode, "")
		return
	}

	page, err := h.boards.List(q)
	if err != nil {
		slog.Warn("post listing degraded to empty page", "type", q.Type, "error", err)
		page = &service.BoardPage{
			Posts: []service.PostView{},
			Page:  1,
			Limit: service.DefaultPageSize,
		}
	}

	respondJSON(w, http.StatusOK, page)
}

// GetPost handles GET /api/posts/{id}. Fetching a post bumps its view
// counter; only published posts are visible here.
func (h *PublicHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	view, err := h.boards.Get(id)
	if err != nil {
		respondDBError(w, "post fetch", err)
		return
	}
	if view == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// ListCategories handles GET /api/categories?type. Returns all active
// categories of the board with published-post counts, led by the
// synthetic "all" entry.
func (h *PublicHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	t := models.PostType(r.URL.Query().Get("type"))
	if !t.Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_TYPE", "")
		return
	}

	cats, err := h.categories.CountsByType(r.Context(), t)
	if err != nil {
		respondDBError(w, "category aggregation", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// ListPartners handles GET /api/partners. Active partners only, in
// display order.
func (h *PublicHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.List(true)
	if err != nil {
		slog.Warn("partner listing degraded to empty list", "error", err)
		partners = []models.Partner{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"partners": partners})
}

// LatestDocument handles GET /api/documents/latest. The most recently
// uploaded introduction file is the public one.
func (h *PublicHandler) LatestDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Latest()
	if err != nil {
		respondDBError(w, "latest document", err)
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no document uploaded yet")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}

// KeepAlive handles GET /api/cron/keep-alive. An external scheduler
// hits this to keep the database from idling out on free-tier hosting.
func (h *PublicHandler) KeepAlive(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Health handles GET /health.
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// boardQueryFromRequest parses the board listing query parameters.
// Returns a non-empty error code when the type or UUID params are
// malformed; unknown sort fields fall back to the default ordering
// downstream rather than erroring.
func boardQueryFromRequest(r *http.Request) (service.BoardQuery, string) {
	params := r.URL.Query()

	t := models.PostType(params.Get("type"))
	if !t.Valid() {
		return service.BoardQuery{}, "INVALID_TYPE"
	}

	q := service.BoardQuery{
		Type:      t,
		Search:    params.Get("search"),
		SortBy:    params.Get("sortBy"),
		SortOrder: params.Get("sortOrder"),
	}

	if raw := params.Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return service.BoardQuery{}, "INVALID_CATEGORY"
		}
		q.CategoryID = &id
	}

	q.Page, _ = strconv.Atoi(params.Get("page"))
	q.Limit, _ = strconv.Atoi(params.Get("limit"))

	return q, ""
}
