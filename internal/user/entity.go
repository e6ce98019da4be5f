// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/angelamos/streamvault/internal/core"
)

type User struct {
	ID                   string          `db:"id"`
	Name                 string          `db:"name"`
	Email                string          `db:"email"`
	Phone                string          `db:"phone"`
	PasswordHash         string          `db:"password_hash"`
	Role                 string          `db:"role"`
	Subscription         string          `db:"subscription"`
	SubscribedCategories core.StringList `db:"subscribed_categories"`
	Active               bool            `db:"active"`
	ResetTokenHash       *string         `db:"reset_token_hash"`
	ResetTokenExpires    *time.Time      `db:"reset_token_expires"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// HasCategoryAccess reports whether the user may watch content carrying the
// given category set: true iff the intersection with the user's subscribed
// categories is non-empty. The subscription tier grants nothing by itself.
func (u *User) HasCategoryAccess(movieCategories core.StringList) bool {
	return u.SubscribedCategories.IntersectsWith(movieCategories)
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

const (
	StatusActive  = "active"
	StatusRevoked = "revoked"
)
