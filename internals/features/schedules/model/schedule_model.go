package model

import (
	"time"

	"github.com/google/uuid"
)

// Status sesi bimbingan.
const (
	ScheduleStatusScheduled     = "scheduled"
	ScheduleStatusCompleted     = "completed"
	ScheduleStatusStudentAbsent = "student_absent"
	ScheduleStatusMentorAbsent  = "mentor_absent"
	ScheduleStatusCanceled      = "canceled"
)

// ScheduleModel merepresentasikan tabel schedules: satu sesi bimbingan
// yang menghubungkan siswa dan mentor.
type ScheduleModel struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID       uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	MentorID        uuid.UUID `gorm:"type:uuid;not null" json:"mentor_id"`
	Subject         string    `gorm:"size:150;not null" json:"subject"`
	StartsAt        time.Time `gorm:"not null" json:"starts_at"`
	EndsAt          time.Time `gorm:"not null" json:"ends_at"`
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	HiddenByStudent bool      `gorm:"not null;default:false" json:"hidden_by_student"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}
