package dto

import (
	"time"

	"github.com/metropower/dashboard/internal/domain"
)

// UserResponse describes the authenticated operator.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CanWrite  bool      `json:"can_write"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a user without its password hash.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CanWrite:  u.CanWrite(),
		CreatedAt: u.CreatedAt,
	}
}
