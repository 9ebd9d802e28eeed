package httpx

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticator turns a bearer token into a Principal.
type Authenticator interface {
	Authenticate(token string) (Principal, error)
}

const apiKeyHeader = "x-api-key"

// AuthMiddleware attaches the caller when a bearer token is present. Requests
// without a token pass through anonymously; a token that does not verify is
// rejected with 401.
func AuthMiddleware(authn Authenticator, log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Invalid authorization header", nil)
				return
			}

			p, err := authn.Authenticate(token)
			if err != nil {
				log.Debug("bearer token rejected", zap.String("request_id", RequestIDFrom(r)), zap.Error(err))
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Invalid or expired token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r); !ok {
			JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}
		next(w, r)
	}
}

// RequireLibrarian allows trusted members (librarian claim) and admins.
func RequireLibrarian(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r)
		if !ok {
			JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}
		if !p.Admin && !p.Librarian {
			JSONError(w, r, http.StatusForbidden, CodeForbidden, "Insufficient permissions", nil)
			return
		}
		next(w, r)
	}
}

// RequireAdmin allows callers with the admin claim, or any caller that
// presents the configured API key. An empty key disables the key path.
func RequireAdmin(apiKey string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey != "" {
				if got := r.Header.Get(apiKeyHeader); got != "" &&
					subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) == 1 {
					next(w, r)
					return
				}
			}
			p, ok := PrincipalFrom(r)
			if !ok {
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
				return
			}
			if !p.Admin {
				JSONError(w, r, http.StatusForbidden, CodeForbidden, "Insufficient permissions", nil)
				return
			}
			next(w, r)
		}
	}
}
