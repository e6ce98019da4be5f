// AngelaMos | 2026
// handler_test.go

package category

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/streamvault/internal/core"
)

type fakeRepository struct {
	categories map[string]*Category
}

func newFakeRepository(categories ...*Category) *fakeRepository {
	f := &fakeRepository{categories: map[string]*Category{}}
	for _, c := range categories {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeRepository) Create(_ context.Context, c *Category) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return core.ErrDuplicateKey
		}
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Category, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) GetByName(_ context.Context, name string) (*Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) List(_ context.Context) ([]Category, error) {
	out := make([]Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, c *Category) error {
	for _, existing := range f.categories {
		if existing.ID != c.ID && existing.Name == c.Name {
			return core.ErrDuplicateKey
		}
	}
	if _, ok := f.categories[c.ID]; !ok {
		return core.ErrNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeRepository) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

// newTestRouter serves both surfaces at the same paths the tests hit:
// production mounts them under different prefixes, so they cannot share a
// single chi router here. Reads go to the public surface, writes to admin.
func newTestRouter(repo Repository) http.Handler {
	h := NewHandler(NewService(repo))
	public := chi.NewRouter()
	h.RegisterRoutes(public)
	admin := chi.NewRouter()
	h.RegisterAdminRoutes(admin)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			public.ServeHTTP(w, req)
			return
		}
		admin.ServeHTTP(w, req)
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreateCategory(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	body := `{"name":"  Sci-Fi  ","description":"Science fiction","is_premium":true}`
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var resp CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "Sci-Fi", resp.Name)
	assert.True(t, resp.IsPremium)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	router := newTestRouter(newFakeRepository(
		&Category{ID: "c-1", Name: "Action"},
	))

	body := `{"name":"Action"}`
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE", env.Error.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	for name, body := range map[string]string{
		"missing name": `{"description":"no name"}`,
		"not json":     `{{{`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost, "/categories", strings.NewReader(body),
			)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	req := httptest.NewRequest(http.MethodGet, "/categories/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCategoryRenameCollision(t *testing.T) {
	router := newTestRouter(newFakeRepository(
		&Category{ID: "c-1", Name: "Action"},
		&Category{ID: "c-2", Name: "Drama"},
	))

	body := `{"name":"Action"}`
	req := httptest.NewRequest(http.MethodPut, "/categories/c-2", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	repo := newFakeRepository(&Category{ID: "c-1", Name: "Action"})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/categories/c-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.categories)
}
