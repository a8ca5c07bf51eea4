package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
	uModel "bimbelku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest — untuk register / create by admin
type CreateUserRequest struct {
	UserName string  `json:"user_name" validate:"required,min=3,max=50"`
	FullName string  `json:"full_name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role     string  `json:"role" validate:"omitempty,oneof=admin mentor siswa"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Normalize — trim & normalisasi dasar
func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(r.Role)
}

// ToModel — konversi ke model (ingat: hash password di controller!)
func (r *CreateUserRequest) ToModel() *uModel.UserModel {
	m := &uModel.UserModel{
		UserName: r.UserName,
		FullName: r.FullName,
		Email:    r.Email,
		Password: r.Password, // hash di controller
		Phone:    r.Phone,
		Role:     constants.Role(r.Role),
	}
	m.SetDefaultValues()
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	} else {
		m.IsActive = true
	}
	return m
}

// UpdateUserRequest — partial update (pakai pointer agar bisa bedakan omit vs null)
type UpdateUserRequest struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin mentor siswa"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Normalize — trims if present
func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Email != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := strings.TrimSpace(*r.Role)
		r.Role = &v
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// UserResponse adalah satu-satunya bentuk user yang keluar ke klien.
// Field sensitif (password hash, google id) tidak ada di tipe ini,
// jadi tidak bisa bocor karena lupa menghapus di call site.
type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	UserName  string         `json:"user_name"`
	FullName  string         `json:"full_name"`
	Email     string         `json:"email"`
	Role      constants.Role `json:"role"`
	Phone     *string        `json:"phone,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}

func FromUserModel(m uModel.UserModel) UserResponse {
	return UserResponse{
		ID:        m.ID,
		UserName:  m.UserName,
		FullName:  m.FullName,
		Email:     m.Email,
		Role:      m.Role,
		Phone:     m.Phone,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func FromUserModels(ms []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromUserModel(m))
	}
	return out
}
