package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionReportModel merepresentasikan tabel session_reports: laporan
// mentor setelah sesi selesai. Baru terlihat oleh siswa setelah
// diverifikasi admin.
type SessionReportModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null;unique" json:"schedule_id"`
	MentorID   uuid.UUID `gorm:"type:uuid;not null" json:"mentor_id"`
	Summary    string    `gorm:"not null" json:"summary"`
	Homework   *string   `json:"homework,omitempty"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionReportModel) TableName() string {
	return "session_reports"
}
