// Package testutil holds helpers shared by handler and routing tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"bookcatalog/internal/auth"
)

const (
	TestSecret   = "test-secret"
	TestIssuer   = "bookcatalog-identity"
	TestAudience = "bookcatalog"
)

func NewTestVerifier() *auth.Verifier {
	return auth.NewVerifier(TestSecret, TestIssuer, TestAudience)
}

// GenerateTestToken signs a one-hour token for userID with extra claims
// such as {"admin": true} or {"librarian": true}.
func GenerateTestToken(t testing.TB, userID uuid.UUID, claims map[string]any) string {
	t.Helper()
	issuer := auth.NewIssuer(TestSecret, TestIssuer, TestAudience, time.Hour)
	token, err := issuer.Issue(auth.TokenRequest{
		UserID:       userID,
		Email:        userID.String() + "@example.com",
		CustomClaims: claims,
	})
	if err != nil {
		t.Fatalf("issue test token: %v", err)
	}
	return token
}

// GenerateExpiredToken signs a token that expired an hour ago.
func GenerateExpiredToken(t testing.TB, userID uuid.UUID) string {
	t.Helper()
	c := auth.Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TestIssuer,
			Audience:  jwt.ClaimStrings{TestAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(TestSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	raw, _ := jsoniter.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth creates a new HTTP request with a bearer token
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordResponse is a decoded response envelope.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	raw, _ := io.ReadAll(result.Body)

	var body map[string]any
	if len(raw) > 0 {
		_ = jsoniter.Unmarshal(raw, &body)
	}

	return RecordResponse{Code: result.StatusCode, Header: result.Header, Body: body}
}

// ErrorCode returns error.code from an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, ok := r.Body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}
