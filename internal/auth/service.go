// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/angelamos/streamvault/internal/config"
	"github.com/angelamos/streamvault/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrEmailExists        = errors.New("email already exists")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

type UserInfo struct {
	ID                   string
	Name                 string
	Email                string
	Phone                string
	PasswordHash         string
	Role                 string
	Subscription         string
	SubscribedCategories core.StringList
	Active               bool
	CreatedAt            time.Time
}

// UserProvider is the slice of the user store the auth flows need.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, phone, passwordHash string,
		subscribedCategories []string,
	) (*UserInfo, error)
	UpdateProfile(
		ctx context.Context,
		id string,
		name, phone *string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(
		ctx context.Context,
		id, tokenHash string,
		expiresAt time.Time,
	) error
	GetByResetToken(ctx context.Context, tokenHash string) (*UserInfo, error)
	ClearResetToken(ctx context.Context, id string) error
}

// Mailer delivers transactional email. Failures are logged and swallowed by
// this service; they never abort the triggering operation.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendPasswordReset(ctx context.Context, email, token, name string) error
}

type Service struct {
	users   UserProvider
	jwt     *JWTManager
	mailer  Mailer
	catalog config.CatalogConfig
}

func NewService(
	users UserProvider,
	jwt *JWTManager,
	mailer Mailer,
	catalog config.CatalogConfig,
) *Service {
	return &Service{
		users:   users,
		jwt:     jwt,
		mailer:  mailer,
		catalog: catalog,
	}
}

// Signup registers a new account with the default role, free subscription,
// and the configured default category. The welcome email is best-effort.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(
		ctx,
		req.Name,
		req.Email,
		req.Phone,
		passwordHash,
		[]string{s.catalog.DefaultSignupCategory},
	)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if sendErr := s.mailer.SendWelcome(ctx, user.Email, user.Name); sendErr != nil {
		slog.Warn("welcome email failed",
			"email", user.Email,
			"error", sendErr,
		)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountDeactivated
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePassword(ctx, user.ID, newHash)
	}

	return s.createAuthResponse(user)
}

// ForgotPassword stores the hash of a fresh reset token on the account and
// mails the raw token. Email failure still reports success to the caller so
// the response does not reveal delivery state.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := core.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(s.catalog.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, core.HashToken(token), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if sendErr := s.mailer.SendPasswordReset(ctx, user.Email, token, user.Name); sendErr != nil {
		slog.Warn("password reset email failed",
			"email", user.Email,
			"error", sendErr,
		)
	}

	return nil
}

// ResetPassword consumes a reset token. The token hash lookup only matches
// unexpired tokens, and the token is cleared after use so it never
// authorizes a second change.
func (s *Service) ResetPassword(
	ctx context.Context,
	token, newPassword string,
) error {
	user, err := s.users.GetByResetToken(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	passwordHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*UserResponse, error) {
	user, err := s.users.UpdateProfile(ctx, userID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.jwt.CreateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}
