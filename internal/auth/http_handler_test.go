package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPHandler_IssueToken(t *testing.T) {
	issuer, verifier := newTestPair()
	handler := NewHTTPHandler(issuer, zap.NewNop())

	t.Run("issues a verifiable token", func(t *testing.T) {
		userID := uuid.New()
		body := `{"userId":"` + userID.String() + `","email":"admin@example.com","customClaims":{"admin":true}}`

		w := httptest.NewRecorder()
		handler.IssueToken(w, httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewBufferString(body)))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Token     string `json:"token"`
				ExpiresIn int    `json:"expires_in"`
			} `json:"data"`
		}
		require.NoError(t, jsoniter.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 3600, resp.Data.ExpiresIn)

		p, err := verifier.Authenticate(resp.Data.Token)
		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.True(t, p.Admin)
	})

	t.Run("email is required", func(t *testing.T) {
		body := `{"userId":"` + uuid.NewString() + `"}`
		w := httptest.NewRecorder()
		handler.IssueToken(w, httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "email is required")
	})

	t.Run("malformed user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.IssueToken(w, httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewBufferString(`{"userId":"x","email":"a@b.io"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
