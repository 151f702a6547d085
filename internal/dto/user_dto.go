package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/entity"
)

type CreateUserRequest struct {
	Nickname        string  `json:"nickname" binding:"required,min=3,max=50"`
	Email           string  `json:"email" binding:"required,email"`
	ConfirmEmail    string  `json:"confirm_email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
	Role            string  `json:"role" binding:"omitempty,oneof=regular admin"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
}

type UpdateUserRequest struct {
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	NewEmail        *string `json:"new_email" binding:"omitempty,email"`
	ConfirmEmail    *string `json:"confirm_email" binding:"omitempty,email"`
	NewPassword     *string `json:"new_password" binding:"omitempty,min=8,max=72"`
	ConfirmPassword *string `json:"confirm_password"`
	Role            *string `json:"role" binding:"omitempty,oneof=regular admin"`
}

type UserListFilter struct {
	UserIDs  []uuid.UUID `form:"user_id"`
	Nickname string      `form:"nickname"`
	Role     string      `form:"role" binding:"omitempty,oneof=regular admin"`
}

type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Nickname    string          `json:"nickname"`
	Email       string          `json:"email"`
	Role        entity.UserRole `json:"role"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Nickname:    u.Nickname,
		Email:       u.Email,
		Role:        u.Role,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
