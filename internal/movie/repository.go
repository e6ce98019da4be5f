// AngelaMos | 2026
// repository.go

package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/angelamos/streamvault/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, m *Movie) error
	InsertMany(ctx context.Context, movies []*Movie) error
	GetByID(ctx context.Context, id string) (*Movie, error)
	List(ctx context.Context, filter ListFilter) ([]Movie, error)
	ExistingTitles(ctx context.Context, titles []string) ([]string, error)
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const movieColumns = `
	id, title, description, poster, video_url, video_type, categories,
	batch_no, duration, featured, is_premium, created_at, updated_at`

type ListFilter struct {
	Query    string
	Category string
	Featured *bool
	Limit    int
}

func (r *repository) Insert(ctx context.Context, m *Movie) error {
	query := `
		INSERT INTO movies (
			id, title, description, poster, video_url, video_type,
			categories, batch_no, duration, featured, is_premium
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID, m.Title, m.Description, m.Poster, m.VideoURL, m.VideoType,
		m.Categories, m.BatchNo, m.Duration, m.Featured, m.IsPremium,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}

	return nil
}

// InsertMany persists the batch with one multi-row statement. The store does
// not enforce title uniqueness; callers dedupe before reaching here.
func (r *repository) InsertMany(ctx context.Context, movies []*Movie) error {
	if len(movies) == 0 {
		return nil
	}

	var (
		sb   strings.Builder
		args = make([]any, 0, len(movies)*11)
	)
	sb.WriteString(`
		INSERT INTO movies (
			id, title, description, poster, video_url, video_type,
			categories, batch_no, duration, featured, is_premium
		) VALUES `)

	for i, m := range movies {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 11
		sb.WriteString("(")
		for j := 1; j <= 11; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			sb.WriteString("$" + strconv.Itoa(base+j))
		}
		sb.WriteString(")")
		args = append(args,
			m.ID, m.Title, m.Description, m.Poster, m.VideoURL, m.VideoType,
			m.Categories, m.BatchNo, m.Duration, m.Featured, m.IsPremium,
		)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("bulk insert movies: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Movie, error) {
	var m Movie
	query := `SELECT` + movieColumns + ` FROM movies WHERE id = $1`

	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	return &m, nil
}

// List applies the optional filters and returns newest first.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]Movie, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions,
			fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions,
			fmt.Sprintf("categories @> to_jsonb(ARRAY[$%d::text])", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conditions = append(conditions,
			fmt.Sprintf("featured = $%d", len(args)))
	}

	query := `SELECT` + movieColumns + ` FROM movies`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	movies := []Movie{}
	if err := r.db.SelectContext(ctx, &movies, query, args...); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return movies, nil
}

// ExistingTitles returns the subset of the given titles that are already
// persisted, by exact match.
func (r *repository) ExistingTitles(ctx context.Context, titles []string) ([]string, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(titles))
	args := make([]any, len(titles))
	for i, t := range titles {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = t
	}

	query := `SELECT DISTINCT title FROM movies WHERE title IN (` +
		strings.Join(placeholders, ", ") + `)`

	existing := []string{}
	if err := r.db.SelectContext(ctx, &existing, query, args...); err != nil {
		return nil, fmt.Errorf("query existing titles: %w", err)
	}

	return existing, nil
}

func (r *repository) Update(ctx context.Context, m *Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, poster = $4, video_url = $5,
		    video_type = $6, categories = $7, batch_no = $8, duration = $9,
		    featured = $10, is_premium = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID, m.Title, m.Description, m.Poster, m.VideoURL, m.VideoType,
		m.Categories, m.BatchNo, m.Duration, m.Featured, m.IsPremium,
	).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM movies`); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}
