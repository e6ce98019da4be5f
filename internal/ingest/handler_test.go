// AngelaMos | 2026
// handler_test.go

package ingest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(store MovieStore) chi.Router {
	h := NewHandler(newTestService(store))
	r := chi.NewRouter()
	h.RegisterAdminRoutes(r)
	return r
}

func csvUpload(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "movies.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestBulkCSVUpload(t *testing.T) {
	store := newFakeMovieStore("Dark")
	router := newTestRouter(store)

	body, contentType := csvUpload(t,
		"title,videoUrl,category\n"+
			"Dark,https://example.com/dark.mp4,Sci-Fi\n"+
			"New Show,https://example.com/new.mp4,\"Drama,Crime\"\n")

	req := httptest.NewRequest(http.MethodPost, "/movies/bulk-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Success bool       `json:"success"`
		Data    BulkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Data.Count)
	assert.Equal(t, "1 duplicate(s) skipped: Dark", env.Data.Warning)
	assert.Equal(t, []string{"Dark"}, env.Data.Duplicates)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "New Show", store.inserted[0].Title)
}

func TestBulkCSVAllDuplicates(t *testing.T) {
	router := newTestRouter(newFakeMovieStore("Dark"))

	body, contentType := csvUpload(t,
		"title,videoUrl\nDark,https://example.com/dark.mp4\n")

	req := httptest.NewRequest(http.MethodPost, "/movies/bulk-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var env struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details struct {
				Duplicates []string `json:"duplicates"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "DUPLICATE", env.Error.Code)
	assert.Equal(t, []string{"Dark"}, env.Error.Details.Duplicates)
}

func TestBulkCSVMissingFile(t *testing.T) {
	router := newTestRouter(newFakeMovieStore())

	req := httptest.NewRequest(
		http.MethodPost, "/movies/bulk-csv", strings.NewReader("not a form"),
	)
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkCSVNoDataRows(t *testing.T) {
	router := newTestRouter(newFakeMovieStore())

	body, contentType := csvUpload(t, "title,videoUrl\n")

	req := httptest.NewRequest(http.MethodPost, "/movies/bulk-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkJSON(t *testing.T) {
	store := newFakeMovieStore("Dark")
	router := newTestRouter(store)

	body := `{"movies":[
		{"title":"Dark","video_url":"https://example.com/dark.mp4"},
		{"title":"New Show","video_url":"https://example.com/new.mp4"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/movies/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data BulkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 2, env.Data.Count)
	assert.Empty(t, env.Data.Warning)
	assert.Len(t, store.inserted, 2)
}

func TestBulkJSONEmptyList(t *testing.T) {
	router := newTestRouter(newFakeMovieStore())

	req := httptest.NewRequest(
		http.MethodPost, "/movies/bulk", strings.NewReader(`{"movies":[]}`),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSampleCSVDownload(t *testing.T) {
	router := newTestRouter(newFakeMovieStore())

	req := httptest.NewRequest(http.MethodGet, "/movies/sample-csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sample-movies.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "title,"))
}
