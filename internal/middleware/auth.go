// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/angelamos/streamvault/internal/core"
)

const (
	UserIDKey         contextKey = "user_id"
	UserRoleKey       contextKey = "user_role"
	UserCategoriesKey contextKey = "user_categories"
)

// Identity is the resolved caller, loaded fresh from the store on every
// authenticated request.
type Identity struct {
	ID                   string
	Role                 string
	SubscribedCategories core.StringList
	Active               bool
}

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (userID string, err error)
}

// IdentityResolver loads the user record behind a verified token.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*Identity, error)
}

// Authenticator verifies the bearer token, resolves the user from the
// store, and rejects deactivated accounts. A valid token for an inactive
// user fails with 403, not 401.
func Authenticator(
	verifier TokenVerifier,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			userID, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), userID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.JSONError(w, core.TokenInvalidError())
					return
				}
				core.InternalServerError(w, err)
				return
			}

			if !identity.Active {
				core.JSONError(w, core.NewAppError(
					core.ErrForbidden,
					"account deactivated, contact admin",
					http.StatusForbidden,
					"ACCOUNT_DEACTIVATED",
				))
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth resolves the caller when a valid token is present but never
// rejects the request. Inactive accounts are treated as anonymous.
func OptionalAuth(
	verifier TokenVerifier,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if userID, err := verifier.VerifyAccessToken(r.Context(), token); err == nil {
					identity, resolveErr := resolver.ResolveIdentity(
						r.Context(),
						userID,
					)
					if resolveErr == nil && identity.Active {
						r = r.WithContext(withIdentity(r.Context(), identity))
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetUserRole(r.Context())

			if userRole == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[userRole]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("admin only"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("admin")(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func withIdentity(ctx context.Context, identity *Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, identity.ID)
	ctx = context.WithValue(ctx, UserRoleKey, identity.Role)
	ctx = context.WithValue(ctx, UserCategoriesKey, identity.SubscribedCategories)
	return ctx
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetUserCategories(ctx context.Context) core.StringList {
	if categories, ok := ctx.Value(UserCategoriesKey).(core.StringList); ok {
		return categories
	}
	return nil
}
