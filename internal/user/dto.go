// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/angelamos/streamvault/internal/core"
)

type UpdateSubscriptionRequest struct {
	Subscription         *string  `json:"subscription" validate:"omitempty,oneof=free premium"`
	SubscribedCategories []string `json:"subscribed_categories" validate:"omitempty,dive,min=1,max=100"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active revoked"`
}

type AdminUserResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	Role                 string          `json:"role"`
	Subscription         string          `json:"subscription"`
	SubscribedCategories core.StringList `json:"subscribed_categories"`
	Active               bool            `json:"active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func toAdminUserResponse(u *User) AdminUserResponse {
	return AdminUserResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Phone:                u.Phone,
		Role:                 u.Role,
		Subscription:         u.Subscription,
		SubscribedCategories: u.SubscribedCategories,
		Active:               u.Active,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func toAdminUserResponses(users []User) []AdminUserResponse {
	out := make([]AdminUserResponse, len(users))
	for i := range users {
		out[i] = toAdminUserResponse(&users[i])
	}
	return out
}
