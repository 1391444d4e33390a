// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hostwise/internal/middleware"
	"hostwise/internal/models"
	"hostwise/internal/service"
	"hostwise/internal/slug"
	"hostwise/internal/storage"
	"hostwise/internal/store"
)

// maxDocumentSize caps introduction-file uploads at 25 MiB.
const maxDocumentSize = 25 << 20

// AdminHandler serves the backoffice CRUD endpoints. All routes are
// behind session auth, 2FA, and CSRF middleware.
type AdminHandler struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	partners   *store.PartnerStore
	requests   *store.ServiceRequestStore
	documents  *store.DocumentStore
	query      *service.PostQueryService
	aggregator *service.CategoryAggregator
	files      *storage.Client // nil when object storage is unconfigured
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(
	posts *store.PostStore,
	categories *store.CategoryStore,
	partners *store.PartnerStore,
	requests *store.ServiceRequestStore,
	documents *store.DocumentStore,
	query *service.PostQueryService,
	aggregator *service.CategoryAggregator,
	files *storage.Client,
) *AdminHandler {
	return &AdminHandler{
		posts:      posts,
		categories: categories,
		partners:   partners,
		requests:   requests,
		documents:  documents,
		query:      query,
		aggregator: aggregator,
		files:      files,
	}
}

// postInput is the admin post create/update payload.
type postInput struct {
	Type     models.PostType `json:"post_type"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Excerpt  *string         `json:"excerpt"`
	ImageURL *string         `json:"image_url"`
	Tags     []string        `json:"tags"`
	Status   string          `json:"status"`

	CategoryID *uuid.UUID `json:"category_id"`

	ClientName     *string `json:"client_name"`
	ClientCompany  *string `json:"client_company"`
	ClientPosition *string `json:"client_position"`
	Rating         *int    `json:"rating"`
}

func (in *postInput) validate() string {
	if !in.Type.Valid() {
		return "post_type must be one of insights, events, testimonials"
	}
	if strings.TrimSpace(in.Title) == "" {
		return "title is required"
	}
	if in.Status != string(models.PostStatusDraft) && in.Status != string(models.PostStatusPublished) {
		return "status must be draft or published"
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return "rating must be between 1 and 5"
	}
	return ""
}

func (in *postInput) apply(p *models.Post) {
	p.Type = in.Type
	p.Title = strings.TrimSpace(in.Title)
	p.Content = in.Content
	p.Excerpt = in.Excerpt
	p.ImageURL = in.ImageURL
	p.Tags = dedupeTags(in.Tags)
	p.Status = models.PostStatus(in.Status)
	p.CategoryID = in.CategoryID
	p.ClientName = in.ClientName
	p.ClientCompany = in.ClientCompany
	p.ClientPosition = in.ClientPosition
	p.Rating = in.Rating
}

// dedupeTags removes duplicates while keeping first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ListPosts handles GET /api/admin/posts. Unlike the public listing,
// drafts are visible and status is an optional filter.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	t := models.PostType(params.Get("type"))
	if !t.Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_TYPE", "")
		return
	}

	q := service.BoardQuery{
		Type:      t,
		Search:    params.Get("search"),
		SortBy:    params.Get("sortBy"),
		SortOrder: params.Get("sortOrder"),
	}
	q.Page, _ = strconv.Atoi(params.Get("page"))
	q.Limit, _ = strconv.Atoi(params.Get("limit"))

	if raw := params.Get("status"); raw != "" {
		status := models.PostStatus(raw)
		if status != models.PostStatusDraft && status != models.PostStatusPublished {
			respondError(w, http.StatusBadRequest, "INVALID_STATUS", "")
			return
		}
		q.Status = &status
	}

	page, err := h.query.Query(q)
	if err != nil {
		respondDBError(w, "admin post list", err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetPost handles GET /api/admin/posts/{id}. Returns the raw stored
// post, drafts included, without touching the view counter.
func (h *AdminHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondDBError(w, "admin post fetch", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	respondJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /api/admin/posts.
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	var post models.Post
	in.apply(&post)
	post.Slug = slug.WithFallback(post.Title, uuid.NewString())

	created, err := h.posts.Create(&post)
	if err != nil {
		if errors.Is(err, store.ErrCategoryBoardMismatch) {
			respondError(w, http.StatusBadRequest, "CATEGORY_BOARD_MISMATCH",
				"the category belongs to a different board")
			return
		}
		respondDBError(w, "admin post create", err)
		return
	}

	h.aggregator.Invalidate(r.Context(), created.Type)
	respondJSON(w, http.StatusCreated, created)
}

// UpdatePost handles PUT /api/admin/posts/{id}. The board of a post is
// immutable after creation; the payload's post_type must match.
func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	var in postInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}
	if msg := in.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondDBError(w, "admin post fetch", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}
	if in.Type != post.Type {
		respondError(w, http.StatusBadRequest, "TYPE_IMMUTABLE",
			"a post cannot move between boards")
		return
	}

	in.apply(post)
	post.Slug = slug.WithFallback(post.Title, post.ID.String())

	if err := h.posts.Update(post); err != nil {
		if errors.Is(err, store.ErrCategoryBoardMismatch) {
			respondError(w, http.StatusBadRequest, "CATEGORY_BOARD_MISMATCH",
				"the category belongs to a different board")
			return
		}
		respondDBError(w, "admin post update", err)
		return
	}

	h.aggregator.Invalidate(r.Context(), post.Type)
	respondJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/admin/posts/{id}.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondDBError(w, "admin post fetch", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	if err := h.posts.Delete(id); err != nil {
		respondDBError(w, "admin post delete", err)
		return
	}

	h.aggregator.Invalidate(r.Context(), post.Type)
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// categoryInput is the admin category create/update payload.
type categoryInput struct {
	Type         models.PostType `json:"post_type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	DisplayOrder *int            `json:"display_order"`
	IsActive     *bool           `json:"is_active"`
}

// ListCategories handles GET /api/admin/categories?type. Inactive
// categories are included here, unlike the public aggregation.
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	t := models.PostType(r.URL.Query().Get("type"))
	if !t.Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_TYPE", "")
		return
	}

	cats, err := h.categories.ListByType(t, false)
	if err != nil {
		respondDBError(w, "admin category list", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// CreateCategory handles POST /api/admin/categories. Omitted display
// order appends the category after the board's current last.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}
	if !in.Type.Valid() || strings.TrimSpace(in.Name) == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"post_type and name are required")
		return
	}
	if strings.TrimSpace(in.Name) == models.AllCategoryName {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"the name is reserved for the synthetic all-posts entry")
		return
	}

	cat := models.Category{
		Type:        in.Type,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    true,
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	if in.DisplayOrder != nil {
		cat.DisplayOrder = *in.DisplayOrder
	} else {
		next, err := h.categories.NextDisplayOrder(in.Type)
		if err != nil {
			respondDBError(w, "next display order", err)
			return
		}
		cat.DisplayOrder = next
	}

	created, err := h.categories.Create(&cat)
	if err != nil {
		respondDBError(w, "admin category create", err)
		return
	}

	h.aggregator.Invalidate(r.Context(), created.Type)
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCategory handles PUT /api/admin/categories/{id}.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	cat, err := h.categories.FindByID(id)
	if err != nil {
		respondDBError(w, "admin category fetch", err)
		return
	}
	if cat == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	var in categoryInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	cat.Name = strings.TrimSpace(in.Name)
	cat.Description = in.Description
	if in.DisplayOrder != nil {
		cat.DisplayOrder = *in.DisplayOrder
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}

	if err := h.categories.Update(cat); err != nil {
		respondDBError(w, "admin category update", err)
		return
	}

	h.aggregator.Invalidate(r.Context(), cat.Type)
	respondJSON(w, http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}. Deletion is
// refused with 409 while any post still references the category.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	cat, err := h.categories.FindByID(id)
	if err != nil {
		respondDBError(w, "admin category fetch", err)
		return
	}
	if cat == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		if errors.Is(err, store.ErrCategoryInUse) {
			respondError(w, http.StatusConflict, "CATEGORY_IN_USE",
				"reassign or delete the posts in this category first")
			return
		}
		respondDBError(w, "admin category delete", err)
		return
	}

	h.aggregator.Invalidate(r.Context(), cat.Type)
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// partnerInput is the admin partner create/update payload.
type partnerInput struct {
	Name         string  `json:"name"`
	LogoURL      *string `json:"logo_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

// ListPartners handles GET /api/admin/partners, inactive included.
func (h *AdminHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.List(false)
	if err != nil {
		respondDBError(w, "admin partner list", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"partners": partners})
}

// CreatePartner handles POST /api/admin/partners.
func (h *AdminHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var in partnerInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	partner := models.Partner{
		Name:     strings.TrimSpace(in.Name),
		LogoURL:  in.LogoURL,
		IsActive: true,
	}
	if in.IsActive != nil {
		partner.IsActive = *in.IsActive
	}
	if in.DisplayOrder != nil {
		partner.DisplayOrder = *in.DisplayOrder
	}

	created, err := h.partners.Create(&partner)
	if err != nil {
		respondDBError(w, "admin partner create", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdatePartner handles PUT /api/admin/partners/{id}.
func (h *AdminHandler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	partner, err := h.partners.FindByID(id)
	if err != nil {
		respondDBError(w, "admin partner fetch", err)
		return
	}
	if partner == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	var in partnerInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	partner.Name = strings.TrimSpace(in.Name)
	partner.LogoURL = in.LogoURL
	if in.IsActive != nil {
		partner.IsActive = *in.IsActive
	}
	if in.DisplayOrder != nil {
		partner.DisplayOrder = *in.DisplayOrder
	}

	if err := h.partners.Update(partner); err != nil {
		respondDBError(w, "admin partner update", err)
		return
	}
	respondJSON(w, http.StatusOK, partner)
}

// DeletePartner handles DELETE /api/admin/partners/{id}.
func (h *AdminHandler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	if err := h.partners.Delete(id); err != nil {
		respondDBError(w, "admin partner delete", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListServiceRequests handles GET /api/service-request (admin view).
// Newest first, optionally filtered by workflow status.
func (h *AdminHandler) ListServiceRequests(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(params.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var status *models.RequestStatus
	if raw := params.Get("status"); raw != "" {
		s := models.RequestStatus(raw)
		if !s.Valid() {
			respondError(w, http.StatusBadRequest, "INVALID_STATUS", "")
			return
		}
		status = &s
	}

	requests, err := h.requests.List(status, limit, (page-1)*limit)
	if err != nil {
		respondDBError(w, "service request list", err)
		return
	}
	total, err := h.requests.Count(status)
	if err != nil {
		respondDBError(w, "service request count", err)
		return
	}

	totalPages := (total + limit - 1) / limit
	respondJSON(w, http.StatusOK, map[string]any{
		"requests":   requests,
		"total":      total,
		"totalPages": totalPages,
		"page":       page,
		"limit":      limit,
	})
}

// UpdateServiceRequestStatus handles
// PUT /api/admin/service-requests/{id}/status. Records which admin
// processed the request.
func (h *AdminHandler) UpdateServiceRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	var in struct {
		Status    string  `json:"status"`
		AdminNote *string `json:"admin_note"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "")
		return
	}

	status := models.RequestStatus(in.Status)
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_STATUS",
			"status must be one of pending, contacted, in_progress, completed")
		return
	}

	req, err := h.requests.FindByID(id)
	if err != nil {
		respondDBError(w, "service request fetch", err)
		return
	}
	if req == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if err := h.requests.UpdateStatus(id, status, in.AdminNote, sess.UserID); err != nil {
		respondDBError(w, "service request status update", err)
		return
	}

	updated, err := h.requests.FindByID(id)
	if err != nil {
		respondDBError(w, "service request fetch", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// ListDocuments handles GET /api/admin/documents, newest first.
func (h *AdminHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List()
	if err != nil {
		respondDBError(w, "document list", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// UploadDocument handles POST /api/admin/documents. The file goes to
// object storage first; the row is only written once the upload
// succeeded, so the table never references a missing object.
func (h *AdminHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
			"object storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "expected multipart form upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "file field is required")
		return
	}
	defer file.Close()

	if header.Size > maxDocumentSize {
		respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			"documents are capped at 25 MiB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "documents/" + uuid.NewString() + filepath.Ext(header.Filename)
	if err := h.files.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("document upload failed", "key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "")
		return
	}

	doc, err := h.documents.Create(&models.Document{
		Name:      header.Filename,
		SizeBytes: header.Size,
		MimeType:  contentType,
		S3Key:     key,
		URL:       h.files.FileURL(key),
	})
	if err != nil {
		// Best-effort cleanup of the orphaned object.
		if derr := h.files.Delete(r.Context(), key); derr != nil {
			slog.Warn("orphaned object cleanup failed", "key", key, "error", derr)
		}
		respondDBError(w, "document create", err)
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// DeleteDocument handles DELETE /api/admin/documents/{id}. The row is
// removed even if the object delete fails, since a dangling object is
// harmless while a dangling row serves a dead link.
func (h *AdminHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	doc, err := h.documents.FindByID(id)
	if err != nil {
		respondDBError(w, "document fetch", err)
		return
	}
	if doc == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "")
		return
	}

	if h.files != nil {
		if err := h.files.Delete(r.Context(), doc.S3Key); err != nil {
			slog.Warn("object delete failed", "key", doc.S3Key, "error", err)
		}
	}

	if err := h.documents.Delete(id); err != nil {
		respondDBError(w, "document delete", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
