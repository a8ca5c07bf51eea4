package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bimbelku_backend/internals/constants"
	model "bimbelku_backend/internals/features/announcements/model"
)

/* ===================== REQUEST ===================== */

// CreateAnnouncementRequest — admin membuat broadcast
type CreateAnnouncementRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Body        string   `json:"body" validate:"required,min=3"`
	TargetRoles []string `json:"target_roles" validate:"omitempty,dive,oneof=all admin mentor siswa"`
}

func (r *CreateAnnouncementRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
	if len(r.TargetRoles) == 0 {
		r.TargetRoles = []string{model.TargetAll}
	}
}

func (r *CreateAnnouncementRequest) ToModel(createdBy uuid.UUID) *model.AnnouncementModel {
	return &model.AnnouncementModel{
		Title:       r.Title,
		Body:        r.Body,
		TargetRoles: pq.StringArray(r.TargetRoles),
		CreatedBy:   &createdBy,
	}
}

// TargetsRole true kalau daftar target mengenai role tsb.
func TargetsRole(targets []string, role constants.Role) bool {
	for _, t := range targets {
		if t == model.TargetAll || t == role.String() {
			return true
		}
	}
	return false
}

/* ===================== RESPONSE ===================== */

// AnnouncementRow — pengumuman + status baca milik pemanggil.
type AnnouncementRow struct {
	ID        uuid.UUID  `gorm:"column:id" json:"id"`
	Title     string     `gorm:"column:title" json:"title"`
	Body      string     `gorm:"column:body" json:"body"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	IsRead    bool       `gorm:"column:is_read" json:"is_read"`
}
