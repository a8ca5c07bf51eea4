package dto

import (
	"strings"

	model "bimbelku_backend/internals/features/packages/model"
)

/* ===================== REQUEST ===================== */

type CreatePackageRequest struct {
	Name          string  `json:"name" validate:"required,min=3,max=150"`
	Description   *string `json:"description,omitempty"`
	PriceIDR      int64   `json:"price_idr" validate:"required,gt=0"`
	TotalSessions int     `json:"total_sessions" validate:"required,gt=0"`
	DurationDays  int     `json:"duration_days" validate:"required,gt=0"`
	Curriculum    *string `json:"curriculum,omitempty"`
}

func (r *CreatePackageRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreatePackageRequest) ToModel() *model.PackageModel {
	return &model.PackageModel{
		Name:          r.Name,
		Description:   r.Description,
		PriceIDR:      r.PriceIDR,
		TotalSessions: r.TotalSessions,
		DurationDays:  r.DurationDays,
		Curriculum:    r.Curriculum,
		IsActive:      true,
	}
}

type UpdatePackageRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=3,max=150"`
	Description   *string `json:"description,omitempty"`
	PriceIDR      *int64  `json:"price_idr,omitempty" validate:"omitempty,gt=0"`
	TotalSessions *int    `json:"total_sessions,omitempty" validate:"omitempty,gt=0"`
	DurationDays  *int    `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	Curriculum    *string `json:"curriculum,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (r *UpdatePackageRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
}
