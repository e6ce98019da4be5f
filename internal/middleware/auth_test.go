// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/streamvault/internal/core"
)

type fakeVerifier struct {
	tokens map[string]string
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(_ context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", core.ErrTokenInvalid
}

type fakeResolver struct {
	identities map[string]*Identity
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, userID string) (*Identity, error) {
	if identity, ok := f.identities[userID]; ok {
		return identity, nil
	}
	return nil, core.ErrNotFound
}

func activeUser() *Identity {
	return &Identity{
		ID:                   "u-1",
		Role:                 "user",
		SubscribedCategories: core.StringList{"Action"},
		Active:               true,
	}
}

func echoIdentity(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         GetUserID(r.Context()),
			"role":       GetUserRole(r.Context()),
			"categories": GetUserCategories(r.Context()),
		})
	})
}

func doAuthRequest(
	t *testing.T,
	mw func(http.Handler) http.Handler,
	authHeader string,
) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	mw(echoIdentity(t)).ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAuthenticatorResolvesActiveUser(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]string{"good-token": "u-1"}}
	resolver := &fakeResolver{identities: map[string]*Identity{"u-1": activeUser()}}

	rec := doAuthRequest(t, Authenticator(verifier, resolver), "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u-1", body["id"])
	assert.Equal(t, "user", body["role"])
}

func TestAuthenticatorMissingToken(t *testing.T) {
	verifier := &fakeVerifier{}
	resolver := &fakeResolver{}

	rec := doAuthRequest(t, Authenticator(verifier, resolver), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doAuthRequest(t, Authenticator(verifier, resolver), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]string{}}
	resolver := &fakeResolver{}

	rec := doAuthRequest(t, Authenticator(verifier, resolver), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A valid token whose user has been deactivated is a 403, not a 401: the
// token itself is fine, the account is not.
func TestAuthenticatorInactiveUserForbidden(t *testing.T) {
	inactive := activeUser()
	inactive.Active = false

	verifier := &fakeVerifier{tokens: map[string]string{"good-token": "u-1"}}
	resolver := &fakeResolver{identities: map[string]*Identity{"u-1": inactive}}

	rec := doAuthRequest(t, Authenticator(verifier, resolver), "Bearer good-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", errorCode(t, rec))
}

func TestAuthenticatorDeletedUserUnauthorized(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]string{"good-token": "u-gone"}}
	resolver := &fakeResolver{identities: map[string]*Identity{}}

	rec := doAuthRequest(t, Authenticator(verifier, resolver), "Bearer good-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		ctx := context.WithValue(req.Context(), UserIDKey, "a-1")
		ctx = context.WithValue(ctx, UserRoleKey, "admin")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		ctx := context.WithValue(req.Context(), UserIDKey, "u-1")
		ctx = context.WithValue(ctx, UserRoleKey, "user")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthInactiveTreatedAsAnonymous(t *testing.T) {
	inactive := activeUser()
	inactive.Active = false

	verifier := &fakeVerifier{tokens: map[string]string{"good-token": "u-1"}}
	resolver := &fakeResolver{identities: map[string]*Identity{"u-1": inactive}}

	rec := doAuthRequest(t, OptionalAuth(verifier, resolver), "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "", body["id"])
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"missing", "", ""},
		{"wrong scheme", "Basic abc", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, ExtractToken(req))
		})
	}
}
