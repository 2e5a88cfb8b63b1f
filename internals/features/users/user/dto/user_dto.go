package dto

import (
	"strings"
	"time"

	"estudify_backend/internals/constants"
	"estudify_backend/internals/features/users/user/model"
)

/* ===================== REQUEST ===================== */

type CreateUserRequest struct {
	UserName  string `json:"user_name"  form:"user_name"  validate:"required,min=3,max=50"`
	Email     string `json:"email"      form:"email"      validate:"required,email,max=255"`
	FirstName string `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"omitempty,max=150"`
	Role      string `json:"role"       form:"role"       validate:"required,oneof=admin teacher student"`
	Password  string `json:"password"   form:"password"   validate:"required,min=8,max=128"`
	IsActive  *bool  `json:"is_active"  form:"is_active"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

// Semua field opsional; Password kosong = tidak diganti.
type UpdateUserRequest struct {
	Email     *string `json:"email"      form:"email"      validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name"  form:"last_name"  validate:"omitempty,max=150"`
	Role      *string `json:"role"       form:"role"       validate:"omitempty,oneof=admin teacher student"`
	IsActive  *bool   `json:"is_active"  form:"is_active"`
	Password  *string `json:"password"   form:"password"   validate:"omitempty,min=8,max=128"`
}

type ListUsersQuery struct {
	Role   string `query:"role"`
	Active string `query:"active"` // "true" | "false" | ""
	Search string `query:"search"`
}

/* ===================== RESPONSE ===================== */

type UserResponse struct {
	ID        uint           `json:"id"`
	UserName  string         `json:"user_name"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	FullName  string         `json:"full_name"`
	Role      constants.Role `json:"role"`
	IsStaff   bool           `json:"is_staff"`
	IsActive  bool           `json:"is_active"`
	JoinedAt  time.Time      `json:"joined_at"`
}

func FromModel(m model.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		FullName:  m.FullName(),
		Role:      m.Role,
		IsStaff:   m.IsStaff,
		IsActive:  m.IsActive,
		JoinedAt:  m.JoinedAt,
	}
}

func FromModels(list []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// Ringkas (dipakai di listing lain: nama siswa/guru)
type UserBrief struct {
	ID       uint   `json:"id"`
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
}

func BriefOf(m *model.UserModel) *UserBrief {
	if m == nil {
		return nil
	}
	return &UserBrief{ID: m.ID, UserName: m.UserName, FullName: m.FullName()}
}
