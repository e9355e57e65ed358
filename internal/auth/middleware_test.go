package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, gotClaims **Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims missing from context")
		*gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareMissingToken(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("secret"), time.Hour)
	var claims *Claims
	h := svc.Middleware()(protectedHandler(t, &claims))

	for _, header := range []string{"", "Bearer ", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "missing auth token", body["message"])
		require.Nil(t, claims)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("secret"), time.Hour)
	var claims *Claims
	h := svc.Middleware()(protectedHandler(t, &claims))

	expired, err := NewService([]byte("secret"), -time.Minute).Issue(testUser())
	require.NoError(t, err)
	forged, err := NewService([]byte("other-secret"), time.Hour).Issue(testUser())
	require.NoError(t, err)

	for _, tok := range []string{"garbage", expired, forged} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "invalid auth token", body["message"])
		require.Nil(t, claims)
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("secret"), time.Hour)
	tok, err := svc.Issue(testUser())
	require.NoError(t, err)

	var claims *Claims
	h := svc.Middleware()(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "ana@example.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
}
