// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/angelamos/streamvault/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const categoryColumns = `
	id, name, description, thumbnail, is_premium, created_at, updated_at`

func (r *repository) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, name, description, thumbnail, is_premium)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Description, c.Thumbnail, c.IsPremium,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateKey
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	query := `SELECT` + categoryColumns + ` FROM categories WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	return &c, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	query := `SELECT` + categoryColumns + ` FROM categories WHERE name = $1`

	err := r.db.GetContext(ctx, &c, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}

	return &c, nil
}

// List returns every category ordered by name ascending.
func (r *repository) List(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	query := `SELECT` + categoryColumns + ` FROM categories ORDER BY name ASC`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, thumbnail = $4, is_premium = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Description, c.Thumbnail, c.IsPremium,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateKey
		}
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM categories`); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
