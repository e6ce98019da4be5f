// AngelaMos | 2026
// service_test.go

package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/streamvault/internal/movie"
)

type fakeMovieStore struct {
	existing  map[string]struct{}
	inserted  []*movie.Movie
	insertErr error
}

func newFakeMovieStore(titles ...string) *fakeMovieStore {
	existing := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		existing[t] = struct{}{}
	}
	return &fakeMovieStore{existing: existing}
}

func (f *fakeMovieStore) ExistingTitles(_ context.Context, titles []string) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, t := range titles {
		if _, ok := f.existing[t]; ok {
			if _, dup := seen[t]; !dup {
				out = append(out, t)
				seen[t] = struct{}{}
			}
		}
	}
	return out, nil
}

func (f *fakeMovieStore) InsertMany(_ context.Context, movies []*movie.Movie) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, movies...)
	return nil
}

func newTestService(store MovieStore) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIngestCSVSkipsExistingTitles(t *testing.T) {
	store := newFakeMovieStore("Dark")
	svc := newTestService(store)

	csv := "title,category\nDark,\"Sci-Fi,Thriller\"\nNew Show,Drama\n"

	result, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, "New Show", result.Movies[0].Title)
	assert.Equal(t, "1 duplicate(s) skipped: Dark", result.Warning)
	assert.Equal(t, []string{"Dark"}, result.Duplicates)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "New Show", store.inserted[0].Title)
}

func TestIngestCSVAllDuplicatesRefused(t *testing.T) {
	store := newFakeMovieStore("Dark", "The Crown")
	svc := newTestService(store)

	csv := "title\nDark\nThe Crown\n"

	_, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	require.Error(t, err)

	var ingestErr *IngestError
	require.ErrorAs(t, err, &ingestErr)
	assert.ErrorIs(t, err, ErrAllDuplicates)
	assert.Equal(t, []string{"Dark", "The Crown"}, ingestErr.Duplicates)
	assert.Empty(t, store.inserted)
}

func TestIngestCSVNoValidRows(t *testing.T) {
	svc := newTestService(newFakeMovieStore())

	csv := "title,description\n,no title\n  ,still no title\n"

	_, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrNoValidRows)
}

func TestIngestCSVUnparsable(t *testing.T) {
	svc := newTestService(newFakeMovieStore())

	_, err := svc.IngestCSV(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnparsableFile)
}

func TestIngestCSVIntraFileDuplicatesBothSurvive(t *testing.T) {
	// Two rows sharing a title are only checked against the store, not
	// against each other, so both insert when the store has neither.
	store := newFakeMovieStore()
	svc := newTestService(store)

	csv := "title\nDark\nDark\n"

	result, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Empty(t, result.Duplicates)
	assert.Len(t, store.inserted, 2)
}

func TestIngestCSVWarningNamesAllSkippedTitles(t *testing.T) {
	store := newFakeMovieStore("Dark", "The Crown")
	svc := newTestService(store)

	csv := "title\nDark\nThe Crown\nFresh One\n"

	result, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "2 duplicate(s) skipped: Dark, The Crown", result.Warning)
	assert.Equal(t, []string{"Dark", "The Crown"}, result.Duplicates)
}

func TestIngestCSVStoreFailurePropagates(t *testing.T) {
	store := newFakeMovieStore()
	store.insertErr = errors.New("connection lost")
	svc := newTestService(store)

	csv := "title\nSome Movie\n"

	_, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAllDuplicates)
}

func TestIngestCSVFieldRoundTrip(t *testing.T) {
	store := newFakeMovieStore()
	svc := newTestService(store)

	csv := `title,description,poster,videoUrl,videoType,category,batchNo,duration,featured,isPremium
Full Row,A film,https://img.example/p.jpg,https://vid.example/v.mp4,youtube,"Action, Sci-Fi",BATCH-9,2h 5min,true,1
`

	result, err := svc.IngestCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)

	m := store.inserted[0]
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Full Row", m.Title)
	assert.Equal(t, "A film", m.Description)
	assert.Equal(t, "https://img.example/p.jpg", m.Poster)
	assert.Equal(t, "https://vid.example/v.mp4", m.VideoURL)
	assert.Equal(t, "youtube", m.VideoType)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, []string(m.Categories))
	assert.Equal(t, "BATCH-9", m.BatchNo)
	assert.Equal(t, "2h 5min", m.Duration)
	assert.True(t, m.Featured)
	assert.True(t, m.IsPremium)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Warning)
}

func TestIngestJSONSkipsReconciliation(t *testing.T) {
	// The JSON bulk surface is the legacy path: it inserts without any
	// duplicate check.
	store := newFakeMovieStore("Dark")
	svc := newTestService(store)

	result, err := svc.IngestJSON(context.Background(), []movie.CreateMovieRequest{
		{Title: "Dark"},
		{Title: "Another"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Len(t, store.inserted, 2)
	assert.Equal(t, "direct", store.inserted[0].VideoType)
}
