package rating

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	cache   CacheEvicter
	log     *zap.Logger
}

// NewHTTPHandler wires the rating endpoints. cache may be nil.
func NewHTTPHandler(service *Service, cache CacheEvicter, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, cache: cache, log: logger.Named("rating_http")}
}

type rateBookReq struct {
	Rating *int `json:"rating" validate:"required"`
}

// Ratings are embedded in cached book responses.
func (h *HTTPHandler) evict(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.EvictByTag(ctx, book.CacheTag); err != nil {
		h.log.Warn("evict output cache failed", zap.String("tag", book.CacheTag), zap.Error(err))
	}
}

func caller(w http.ResponseWriter, r *http.Request) (bookID, userID uuid.UUID, ok bool) {
	p, authenticated := httpx.PrincipalFrom(r)
	if !authenticated {
		httpx.JSONError(w, r, http.StatusUnauthorized, httpx.CodeUnauthorized, "Authentication required", nil)
		return uuid.Nil, uuid.Nil, false
	}
	bookID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONNotFound(w, r, "Book not found")
		return uuid.Nil, uuid.Nil, false
	}
	return bookID, p.UserID, true
}

// RateBook handles POST /api/books/{id}/ratings
// @Summary Rate a book
// @Description Create or overwrite the caller's rating (1-10)
// @Tags ratings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Book id"
// @Param request body rateBookReq true "Rating request"
// @Success 204 "No Content"
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id}/ratings [post]
func (h *HTTPHandler) RateBook(w http.ResponseWriter, r *http.Request) {
	bookID, userID, ok := caller(w, r)
	if !ok {
		return
	}

	var req rateBookReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid request body", nil)
		return
	}
	if failures := httpx.ValidateStruct(req); len(failures) > 0 {
		httpx.JSONValidationError(w, r, failures)
		return
	}

	rated, err := h.service.RateBook(r.Context(), bookID, userID, *req.Rating)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	if !rated {
		httpx.JSONNotFound(w, r, "Book not found")
		return
	}
	h.evict(r.Context())

	httpx.NoContent(w)
}

// DeleteRating handles DELETE /api/books/{id}/ratings
// @Summary Remove the caller's rating
// @Tags ratings
// @Security BearerAuth
// @Param id path string true "Book id"
// @Success 204 "No Content"
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id}/ratings [delete]
func (h *HTTPHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	bookID, userID, ok := caller(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteRating(r.Context(), bookID, userID)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	if !deleted {
		httpx.JSONNotFound(w, r, "Rating not found")
		return
	}
	h.evict(r.Context())

	httpx.NoContent(w)
}

// ListMine handles GET /api/ratings/me
// @Summary List the caller's ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/ratings/me [get]
func (h *HTTPHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFrom(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusUnauthorized, httpx.CodeUnauthorized, "Authentication required", nil)
		return
	}

	ratings, err := h.service.GetRatingsForUser(r.Context(), p.UserID)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, ratings, map[string]any{"total": len(ratings)})
}
