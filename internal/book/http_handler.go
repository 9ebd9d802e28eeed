package book

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/validation"
)

// CacheTag groups every cached response that embeds book data.
const CacheTag = "books"

const defaultPageSize = 10

type HTTPHandler struct {
	service *Service
	cache   CacheEvicter
	log     *zap.Logger
}

// NewHTTPHandler wires the book endpoints. cache may be nil when output
// caching is disabled.
func NewHTTPHandler(service *Service, cache CacheEvicter, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, cache: cache, log: logger.Named("book_http")}
}

// BookRequest is the body of create and update requests.
type BookRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	YearOfRelease int      `json:"year_of_release"`
	NumberOfPages int      `json:"number_of_pages"`
	Genres        []string `json:"genres" validate:"omitempty,dive,required"`
}

func (req BookRequest) toBook(id uuid.UUID) *Book {
	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}
	return &Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		YearOfRelease: req.YearOfRelease,
		NumberOfPages: req.NumberOfPages,
		Genres:        genres,
	}
}

func decodeBookRequest(w http.ResponseWriter, r *http.Request) (BookRequest, bool) {
	var req BookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid JSON body", nil)
		return req, false
	}
	if failures := httpx.ValidateStruct(req); len(failures) > 0 {
		httpx.JSONValidationError(w, r, failures)
		return req, false
	}
	return req, true
}

// parseListOptions maps the query string onto ListOptions. Range checks are
// left to the service so every listing rule is reported together.
func parseListOptions(r *http.Request) (ListOptions, error) {
	q := r.URL.Query()
	opts := ListOptions{Page: 1, PageSize: defaultPageSize}
	verr := &validation.Error{}

	if v := strings.TrimSpace(q.Get("title")); v != "" {
		opts.Title = &v
	}
	if v := strings.TrimSpace(q.Get("author")); v != "" {
		opts.Author = &v
	}
	if v := strings.TrimSpace(q.Get("sortBy")); v != "" {
		opts.SortOrder = Ascending
		switch v[0] {
		case '-':
			opts.SortOrder = Descending
			v = v[1:]
		case '+':
			v = v[1:]
		}
		opts.SortField = &v
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		verr.Check(err == nil, "page", "Page must be a whole number")
		opts.Page = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		verr.Check(err == nil, "page_size", "Page size must be a whole number")
		opts.PageSize = n
	}
	return opts, verr.Err()
}

func (h *HTTPHandler) evict(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.EvictByTag(ctx, CacheTag); err != nil {
		h.log.Warn("evict output cache failed", zap.String("tag", CacheTag), zap.Error(err))
	}
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	return id, err == nil
}

// List handles GET /api/books
// @Summary List books
// @Description Page through the catalog with optional filters and sorting
// @Tags books
// @Produce json
// @Param title query string false "Case-insensitive title fragment"
// @Param author query string false "Case-insensitive author fragment"
// @Param sortBy query string false "Sort field, prefix with - for descending"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	opts = opts.WithUserID(httpx.UserIDFrom(r))

	books, total, err := h.service.GetAll(r.Context(), opts)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"page":          opts.Page,
		"page_size":     opts.PageSize,
		"total":         total,
		"has_next_page": total > opts.Page*opts.PageSize,
	})
}

// Get handles GET /api/books/{idOrSlug}
// @Summary Get a book
// @Description Look a book up by id, or by slug when the value is not a UUID
// @Tags books
// @Produce json
// @Param idOrSlug path string true "Book id or slug"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{idOrSlug} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("idOrSlug")
	userID := httpx.UserIDFrom(r)

	var (
		b   *Book
		err error
	)
	if id, perr := uuid.Parse(idOrSlug); perr == nil {
		b, err = h.service.GetByID(r.Context(), id, userID)
	} else {
		b, err = h.service.GetBySlug(r.Context(), idOrSlug, userID)
	}
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	if b == nil {
		httpx.JSONNotFound(w, r, "Book not found")
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /api/books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BookRequest true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /api/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}

	b := req.toBook(uuid.New())
	if err := h.service.Create(r.Context(), b); err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	h.evict(r.Context())

	httpx.JSONCreated(w, r, "/api/books/"+b.ID.String(), b)
}

// Update handles PUT /api/books/{id}
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book id"
// @Param body body BookRequest true "Book"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONNotFound(w, r, "Book not found")
		return
	}
	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), req.toBook(id), httpx.UserIDFrom(r))
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	if updated == nil {
		httpx.JSONNotFound(w, r, "Book not found")
		return
	}
	h.evict(r.Context())

	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /api/books/{id}
// @Summary Delete a book
// @Tags books
// @Security BearerAuth
// @Security ApiKeyAuth
// @Param id path string true "Book id"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONNotFound(w, r, "Book not found")
		return
	}

	deleted, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	if !deleted {
		httpx.JSONNotFound(w, r, "Book not found")
		return
	}
	h.evict(r.Context())

	httpx.NoContent(w)
}
