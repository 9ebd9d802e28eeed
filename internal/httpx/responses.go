package httpx

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"bookcatalog/internal/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Meta    any  `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    any               `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Details []validation.Failure `json:"details,omitempty"`
}

// Error codes shared by all handlers.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternal      = "INTERNAL_ERROR"
	CodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	CodeBadAPIVersion = "UNSUPPORTED_API_VERSION"
)

func buildMeta(r *http.Request, custom map[string]any) map[string]any {
	requestID := RequestIDFrom(r)
	if requestID == "" && len(custom) == 0 {
		return nil
	}
	meta := make(map[string]any, len(custom)+1)
	for k, v := range custom {
		meta[k] = v
	}
	if requestID != "" {
		meta["request_id"] = requestID
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("write response body failed", zap.Error(err))
	}
}

func JSONSuccess(w http.ResponseWriter, r *http.Request, data any, meta map[string]any) {
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data, Meta: buildMeta(r, meta)})
}

// JSONCreated writes a 201 with a Location header pointing at the new resource.
func JSONCreated(w http.ResponseWriter, r *http.Request, location string, data any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	writeJSON(w, http.StatusCreated, SuccessResponse{Success: true, Data: data, Meta: buildMeta(r, nil)})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, r *http.Request, status int, code, message string, details []validation.Failure) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   ErrorResponseBody{Code: code, Message: message, Details: details},
		Meta:    buildMeta(r, nil),
	})
}

func JSONValidationError(w http.ResponseWriter, r *http.Request, failures []validation.Failure) {
	JSONError(w, r, http.StatusBadRequest, CodeValidation, "One or more validation errors occurred", failures)
}

func JSONNotFound(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, http.StatusNotFound, CodeNotFound, message, nil)
}

// DecodeJSON reads a request body into dst. Unknown fields are ignored.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// WriteServiceError maps an error returned by a service: validation
// failures become 400, everything else 500 with the details logged.
func WriteServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if verr, ok := validation.As(err); ok {
		JSONValidationError(w, r, verr.Failures)
		return
	}
	log.Error("request failed",
		zap.String("request_id", RequestIDFrom(r)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	JSONError(w, r, http.StatusInternalServerError, CodeInternal, "An internal error occurred", nil)
}
