package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuthenticator map[string]Principal

func (s stubAuthenticator) Authenticate(token string) (Principal, error) {
	p, ok := s[token]
	if !ok {
		return Principal{}, errors.New("unknown token")
	}
	return p, nil
}

var (
	readerID   = uuid.New()
	stubTokens = stubAuthenticator{
		"reader":    {UserID: readerID},
		"librarian": {UserID: uuid.New(), Librarian: true},
		"admin":     {UserID: uuid.New(), Admin: true},
	}
)

func serveWithAuth(h http.HandlerFunc, token string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	AuthMiddleware(stubTokens, zap.NewNop())(h).ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	var got *uuid.UUID
	capture := func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFrom(r)
		w.WriteHeader(http.StatusOK)
	}

	t.Run("anonymous passes through", func(t *testing.T) {
		got = nil
		w := serveWithAuth(capture, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, got)
	})

	t.Run("valid token attaches the caller", func(t *testing.T) {
		w := serveWithAuth(capture, "reader", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		if assert.NotNil(t, got) {
			assert.Equal(t, readerID, *got)
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		w := serveWithAuth(capture, "forged", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non bearer scheme is rejected", func(t *testing.T) {
		w := serveWithAuth(capture, "", map[string]string{"Authorization": "Basic Zm9vOmJhcg=="})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPolicies(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	admin := RequireAdmin("s3cret")

	cases := []struct {
		name   string
		h      http.HandlerFunc
		token  string
		header map[string]string
		want   int
	}{
		{"user policy anonymous", RequireUser(ok), "", nil, http.StatusUnauthorized},
		{"user policy reader", RequireUser(ok), "reader", nil, http.StatusOK},
		{"librarian policy reader", RequireLibrarian(ok), "reader", nil, http.StatusForbidden},
		{"librarian policy librarian", RequireLibrarian(ok), "librarian", nil, http.StatusOK},
		{"librarian policy admin", RequireLibrarian(ok), "admin", nil, http.StatusOK},
		{"admin policy anonymous", admin(ok), "", nil, http.StatusUnauthorized},
		{"admin policy librarian", admin(ok), "librarian", nil, http.StatusForbidden},
		{"admin policy admin", admin(ok), "admin", nil, http.StatusOK},
		{"admin policy api key", admin(ok), "", map[string]string{"x-api-key": "s3cret"}, http.StatusOK},
		{"admin policy wrong api key", admin(ok), "", map[string]string{"x-api-key": "guess"}, http.StatusUnauthorized},
		{"empty api key never matches", RequireAdmin("")(ok), "", map[string]string{"x-api-key": ""}, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, serveWithAuth(tc.h, tc.token, tc.header).Code)
		})
	}
}
