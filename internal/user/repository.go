// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/angelamos/streamvault/internal/core"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	UpdateProfile(ctx context.Context, id string, name, phone *string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateSubscription(
		ctx context.Context,
		id string,
		subscription *string,
		categories core.StringList,
	) (*User, error)
	Revoke(ctx context.Context, id string) (*User, error)
	Deactivate(ctx context.Context, id string) (*User, error)
	Reactivate(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, tokenHash string) (*User, error)
	ClearResetToken(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, name, email, phone, password_hash, role, subscription,
	subscribed_categories, active, reset_token_hash, reset_token_expires,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (
			id, name, email, phone, password_hash, role, subscription,
			subscribed_categories, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role,
		u.Subscription, u.SubscribedCategories, u.Active,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]User, error) {
	users := []User{}
	query := `SELECT` + userColumns + ` FROM users
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	id string,
	name, phone *string,
) (*User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, name, phone)
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, core.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

// UpdateSubscription rewrites the tier and/or the category grants. A nil
// argument leaves the corresponding column untouched.
func (r *repository) UpdateSubscription(
	ctx context.Context,
	id string,
	subscription *string,
	categories core.StringList,
) (*User, error) {
	query := `
		UPDATE users
		SET subscription = COALESCE($2, subscription),
		    subscribed_categories = COALESCE($3, subscribed_categories),
		    updated_at = NOW()
		WHERE id = $1`

	var cats any
	if categories != nil {
		cats = categories
	}

	result, err := r.db.ExecContext(ctx, query, id, subscription, cats)
	if err != nil {
		return nil, fmt.Errorf("update user subscription: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, core.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Revoke deactivates the account and strips every entitlement in a single
// statement so a revoked user cannot retain paid access.
func (r *repository) Revoke(ctx context.Context, id string) (*User, error) {
	query := `
		UPDATE users
		SET active = FALSE,
		    subscribed_categories = '[]'::jsonb,
		    subscription = 'free',
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("revoke user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, core.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Deactivate flips the active flag off and nothing else, so the account's
// entitlements survive a later reactivation.
func (r *repository) Deactivate(ctx context.Context, id string) (*User, error) {
	query := `UPDATE users SET active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("deactivate user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, core.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Reactivate(ctx context.Context, id string) (*User, error) {
	query := `UPDATE users SET active = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("reactivate user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, core.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *repository) SetResetToken(
	ctx context.Context,
	id, tokenHash string,
	expiresAt time.Time,
) error {
	query := `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expires = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return core.ErrNotFound
	}

	return nil
}

// GetByResetToken matches only tokens that have not expired yet.
func (r *repository) GetByResetToken(ctx context.Context, tokenHash string) (*User, error) {
	var u User
	query := `SELECT` + userColumns + ` FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires > NOW()`

	err := r.db.GetContext(ctx, &u, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by reset token: %w", err)
	}

	return &u, nil
}

func (r *repository) ClearResetToken(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	return nil
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
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
