package dto

import (
	"time"

	userDTO "estudify_backend/internals/features/users/user/dto"
)

type LoginRequest struct {
	Identifier string `json:"identifier" form:"identifier" validate:"required,max=255"` // username atau email
	Password   string `json:"password"   form:"password"   validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     form:"new_password"     validate:"required,min=8,max=128"`
}

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
	Dashboard   string               `json:"dashboard"`
	User        userDTO.UserResponse `json:"user"`
}

type MeResponse struct {
	Dashboard string               `json:"dashboard"`
	User      userDTO.UserResponse `json:"user"`
}
