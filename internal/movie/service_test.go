// AngelaMos | 2026
// service_test.go

package movie

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/streamvault/internal/core"
)

type fakeRepository struct {
	movies map[string]*Movie
}

func newFakeRepository(movies ...*Movie) *fakeRepository {
	f := &fakeRepository{movies: map[string]*Movie{}}
	for _, m := range movies {
		f.movies[m.ID] = m
	}
	return f
}

func (f *fakeRepository) Insert(_ context.Context, m *Movie) error {
	f.movies[m.ID] = m
	return nil
}

func (f *fakeRepository) InsertMany(_ context.Context, movies []*Movie) error {
	for _, m := range movies {
		f.movies[m.ID] = m
	}
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Movie, error) {
	if m, ok := f.movies[id]; ok {
		return m, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) List(_ context.Context, filter ListFilter) ([]Movie, error) {
	out := make([]Movie, 0, len(f.movies))
	for _, m := range f.movies {
		if filter.Featured != nil && m.Featured != *filter.Featured {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepository) ExistingTitles(_ context.Context, titles []string) ([]string, error) {
	want := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		want[t] = struct{}{}
	}
	var found []string
	for _, m := range f.movies {
		if _, ok := want[m.Title]; ok {
			found = append(found, m.Title)
		}
	}
	return found, nil
}

func (f *fakeRepository) Update(_ context.Context, m *Movie) error {
	if _, ok := f.movies[m.ID]; !ok {
		return core.ErrNotFound
	}
	f.movies[m.ID] = m
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.movies[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.movies, id)
	return nil
}

func (f *fakeRepository) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.movies)), nil
}

func TestCheckAccess(t *testing.T) {
	repo := newFakeRepository(
		&Movie{ID: "m-1", Title: "Dark", Categories: core.StringList{"Sci-Fi", "Thriller"}},
		&Movie{ID: "m-2", Title: "Uncategorised", Categories: core.StringList{}},
	)
	svc := NewService(repo, 100)

	t.Run("granted on shared category", func(t *testing.T) {
		resp, err := svc.CheckAccess(
			context.Background(), "m-1", core.StringList{"Thriller"},
		)
		require.NoError(t, err)
		assert.True(t, resp.HasAccess)
		assert.Equal(t, ReasonCategorySubscription, resp.Reason)
	})

	t.Run("denied without overlap", func(t *testing.T) {
		resp, err := svc.CheckAccess(
			context.Background(), "m-1", core.StringList{"Drama"},
		)
		require.NoError(t, err)
		assert.False(t, resp.HasAccess)
		assert.Equal(t, ReasonNoCategoryAccess, resp.Reason)
	})

	t.Run("denied with no subscriptions", func(t *testing.T) {
		resp, err := svc.CheckAccess(context.Background(), "m-1", nil)
		require.NoError(t, err)
		assert.False(t, resp.HasAccess)
	})

	t.Run("uncategorised movie never accessible", func(t *testing.T) {
		resp, err := svc.CheckAccess(
			context.Background(), "m-2", core.StringList{"Sci-Fi", "Drama"},
		)
		require.NoError(t, err)
		assert.False(t, resp.HasAccess)
	})

	t.Run("unknown movie", func(t *testing.T) {
		_, err := svc.CheckAccess(
			context.Background(), "missing", core.StringList{"Sci-Fi"},
		)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestCreateDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 100)

	m, err := svc.Create(context.Background(), CreateMovieRequest{
		Title:    "  Padded Title  ",
		VideoURL: "https://cdn.example.com/v.mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, "Padded Title", m.Title)
	assert.Equal(t, VideoTypeDirect, m.VideoType)
	assert.NotNil(t, m.Categories)
	assert.Empty(t, m.Categories)
	assert.NotEmpty(t, m.ID)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeRepository(&Movie{
		ID:         "m-1",
		Title:      "Dark",
		VideoType:  VideoTypeDirect,
		Categories: core.StringList{"Sci-Fi"},
		Featured:   true,
	})
	svc := NewService(repo, 100)

	title := "Dark (Remastered)"
	m, err := svc.Update(context.Background(), "m-1", UpdateMovieRequest{
		Title: &title,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dark (Remastered)", m.Title)
	assert.Equal(t, core.StringList{"Sci-Fi"}, m.Categories)
	assert.True(t, m.Featured)
}

func TestListClampsLimit(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 50)

	_, err := svc.List(context.Background(), ListFilter{Limit: 10_000})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), ListFilter{Limit: -1})
	require.NoError(t, err)
}
