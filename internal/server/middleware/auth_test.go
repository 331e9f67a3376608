package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SessionIDGetter, error) {
	id, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(id), nil
}

type testClaims string

func (c testClaims) GetSessionID() string {
	return string(c)
}

func TestSessionAuth_ValidToken(t *testing.T) {
	tokens := &testTokenValidator{validTokens: map[string]string{"valid-token": "session-1"}}

	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetSessionID(r)
		require.NoError(t, err)
		got = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	SessionAuth(tokens)(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-1", got)
}

func TestSessionAuth_Rejected(t *testing.T) {
	tokens := &testTokenValidator{validTokens: map[string]string{"valid-token": "session-1"}}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic valid-token"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer valid-token extra"},
		{"unknown token", "Bearer other-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			SessionAuth(tokens)(handler).ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestSessionAuth_CaseInsensitiveScheme(t *testing.T) {
	tokens := &testTokenValidator{validTokens: map[string]string{"tok": "s"}}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "bearer tok")
	w := httptest.NewRecorder()

	SessionAuth(tokens)(handler).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetSessionID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionID(req)
	assert.Error(t, err)

	req = req.WithContext(WithSessionID(req.Context(), "abc"))
	id, err := GetSessionID(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
