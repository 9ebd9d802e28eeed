package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "requestID"
	holderKey    contextKey = "principalHolder"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	Admin     bool
	Librarian bool
}

type principalHolder struct {
	p   Principal
	set bool
}

func contextWithHolder(ctx context.Context, h *principalHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// ContextWithPrincipal returns a new context carrying the caller.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	if h, ok := ctx.Value(holderKey).(*principalHolder); ok {
		h.p, h.set = p, true
	}
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom retrieves the caller from the request context.
func PrincipalFrom(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

// UserIDFrom returns the caller's user id, or nil for anonymous requests.
func UserIDFrom(r *http.Request) *uuid.UUID {
	p, ok := PrincipalFrom(r)
	if !ok {
		return nil
	}
	id := p.UserID
	return &id
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
