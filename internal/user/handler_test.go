// AngelaMos | 2026
// handler_test.go

package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/streamvault/internal/core"
)

func newTestRouter(repo Repository) chi.Router {
	h := NewHandler(NewService(repo, testCatalog))
	r := chi.NewRouter()
	h.RegisterAdminRoutes(r)
	return r
}

type listEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func TestListUsersEndpointPaginates(t *testing.T) {
	repo := newFakeRepository(adminSeed(), memberSeed())
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/users?page=1&page_size=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var env listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 1, env.Meta.PageSize)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var users []AdminUserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 1)
}

func TestListUsersEndpointDefaults(t *testing.T) {
	repo := newFakeRepository(adminSeed(), memberSeed())
	router := newTestRouter(repo)

	// Garbage paging params fall back to the defaults.
	req := httptest.NewRequest(http.MethodGet, "/users?page=abc&page_size=-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var env listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, defaultPageSize, env.Meta.PageSize)
	assert.Equal(t, 2, env.Meta.Total)
}

func TestToggleStatusEndpointKeepsEntitlements(t *testing.T) {
	repo := newFakeRepository(memberSeed())
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPut, "/users/member-1/toggle-status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	u, err := repo.GetByID(req.Context(), "member-1")
	require.NoError(t, err)
	assert.False(t, u.Active)
	assert.Equal(t, SubscriptionPremium, u.Subscription)
	assert.Equal(t, core.StringList{"Thriller", "Sci-Fi"}, u.SubscribedCategories)
}
