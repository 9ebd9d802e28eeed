package auth

import (
	"net/http"

	"go.uber.org/zap"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	issuer *Issuer
	log    *zap.Logger
}

func NewHTTPHandler(issuer *Issuer, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{issuer: issuer, log: logger.Named("auth_http")}
}

// IssueToken handles POST /api/token
// @Summary Issue a development token
// @Description Signs a bearer token for the given user. Only mounted when TOKEN_ENDPOINT_ENABLED is set.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/token [post]
func (h *HTTPHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid request body", nil)
		return
	}
	if failures := httpx.ValidateStruct(req); len(failures) > 0 {
		httpx.JSONValidationError(w, r, failures)
		return
	}

	token, err := h.issuer.Issue(req)
	if err != nil {
		httpx.WriteServiceError(w, r, h.log, err)
		return
	}
	h.log.Info("token issued", zap.Stringer("user_id", req.UserID))

	httpx.JSONSuccess(w, r, map[string]any{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(h.issuer.ttl.Seconds()),
	}, nil)
}
