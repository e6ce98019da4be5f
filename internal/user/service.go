// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/streamvault/internal/auth"
	"github.com/angelamos/streamvault/internal/config"
	"github.com/angelamos/streamvault/internal/core"
	"github.com/angelamos/streamvault/internal/middleware"
)

var (
	ErrProtectedIdentity = errors.New("this account cannot be modified")
	ErrInvalidStatus     = errors.New("invalid status")
)

type Service struct {
	repo    Repository
	catalog config.CatalogConfig
}

func NewService(repo Repository, catalog config.CatalogConfig) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// --- auth.UserProvider ---

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) Create(
	ctx context.Context,
	name, email, phone, passwordHash string,
	subscribedCategories []string,
) (*auth.UserInfo, error) {
	// Emails are stored exactly as given, minus surrounding whitespace.
	email = strings.TrimSpace(email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, core.ErrDuplicateKey
	}

	u := &User{
		ID:                   uuid.New().String(),
		Name:                 name,
		Email:                email,
		Phone:                phone,
		PasswordHash:         passwordHash,
		Role:                 RoleUser,
		Subscription:         SubscriptionFree,
		SubscribedCategories: core.StringList(subscribedCategories),
		Active:               true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	name, phone *string,
) (*auth.UserInfo, error) {
	u, err := s.repo.UpdateProfile(ctx, id, name, phone)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) SetResetToken(
	ctx context.Context,
	id, tokenHash string,
	expiresAt time.Time,
) error {
	return s.repo.SetResetToken(ctx, id, tokenHash, expiresAt)
}

func (s *Service) GetByResetToken(ctx context.Context, tokenHash string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByResetToken(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) ClearResetToken(ctx context.Context, id string) error {
	return s.repo.ClearResetToken(ctx, id)
}

// --- middleware.IdentityResolver ---

func (s *Service) ResolveIdentity(ctx context.Context, userID string) (*middleware.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:                   u.ID,
		Role:                 u.Role,
		SubscribedCategories: u.SubscribedCategories,
		Active:               u.Active,
	}, nil
}

// --- admin operations ---

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListUsers returns one page of accounts, newest first, plus the total count
// so callers can compute page numbers.
func (s *Service) ListUsers(ctx context.Context, page, pageSize int) ([]User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	users, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateSubscription changes the tier and/or replaces the category grants.
// Passing nil for either leaves it unchanged.
func (s *Service) UpdateSubscription(
	ctx context.Context,
	id string,
	subscription *string,
	categories []string,
) (*User, error) {
	if subscription != nil {
		switch *subscription {
		case SubscriptionFree, SubscriptionPremium:
		default:
			return nil, core.ValidationError(
				fmt.Sprintf("subscription must be %q or %q", SubscriptionFree, SubscriptionPremium),
			)
		}
	}

	var cats core.StringList
	if categories != nil {
		cats = core.StringList(categories)
	}

	return s.repo.UpdateSubscription(ctx, id, subscription, cats)
}

// SetStatus flips the account between active and revoked. Revocation strips
// the category grants and downgrades the tier to free in the same write.
// The protected admin identity can never be revoked.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*User, error) {
	switch status {
	case StatusActive:
		return s.repo.Reactivate(ctx, id)
	case StatusRevoked:
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.isProtected(u.Email) {
			return nil, ErrProtectedIdentity
		}
		return s.repo.Revoke(ctx, id)
	default:
		return nil, ErrInvalidStatus
	}
}

// ToggleStatus flips the active flag without touching entitlements, so a
// toggle off/on round-trip leaves the subscription and category grants
// intact. Stripping entitlements is SetStatus(revoked)'s job. The protected
// admin identity can never be deactivated.
func (s *Service) ToggleStatus(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Active {
		if s.isProtected(u.Email) {
			return nil, ErrProtectedIdentity
		}
		return s.repo.Deactivate(ctx, id)
	}
	return s.repo.Reactivate(ctx, id)
}

// Delete removes the account permanently. The protected admin identity can
// never be deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.isProtected(u.Email) {
		return ErrProtectedIdentity
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

func (s *Service) isProtected(email string) bool {
	return strings.EqualFold(email, s.catalog.ProtectedAdminEmail)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Phone:                u.Phone,
		PasswordHash:         u.PasswordHash,
		Role:                 u.Role,
		Subscription:         u.Subscription,
		SubscribedCategories: u.SubscribedCategories,
		Active:               u.Active,
		CreatedAt:            u.CreatedAt,
	}
}
