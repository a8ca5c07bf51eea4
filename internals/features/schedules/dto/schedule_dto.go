package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUEST ===================== */

// HideSchedulesRequest — body PUT /my-schedules/hide-bulk
type HideSchedulesRequest struct {
	ScheduleIDs []uuid.UUID `json:"scheduleIds" validate:"required,min=1"`
}

// CreateScheduleRequest — admin membuat sesi baru
type CreateScheduleRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	MentorID  uuid.UUID `json:"mentor_id" validate:"required"`
	Subject   string    `json:"subject" validate:"required,min=2,max=150"`
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	EndsAt    time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

func (r *CreateScheduleRequest) Normalize() {
	r.Subject = strings.TrimSpace(r.Subject)
}

// CreateSessionReportRequest — mentor menulis laporan sesi
type CreateSessionReportRequest struct {
	Summary  string  `json:"summary" validate:"required,min=10"`
	Homework *string `json:"homework,omitempty"`
}

func (r *CreateSessionReportRequest) Normalize() {
	r.Summary = strings.TrimSpace(r.Summary)
	if r.Homework != nil {
		v := strings.TrimSpace(*r.Homework)
		r.Homework = &v
	}
}

/* ===================== RESPONSE ===================== */

// UpcomingScheduleRow — join schedules + mentor untuk listing siswa.
type UpcomingScheduleRow struct {
	ID         uuid.UUID `gorm:"column:id" json:"id"`
	Subject    string    `gorm:"column:subject" json:"subject"`
	MentorName string    `gorm:"column:mentor_name" json:"mentor_name"`
	StartsAt   time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt     time.Time `gorm:"column:ends_at" json:"ends_at"`
	Status     string    `gorm:"column:status" json:"status"`
}

// SessionHistoryRow — join schedules + mentor + laporan terverifikasi.
type SessionHistoryRow struct {
	ID            uuid.UUID `gorm:"column:id" json:"id"`
	Subject       string    `gorm:"column:subject" json:"subject"`
	MentorName    string    `gorm:"column:mentor_name" json:"mentor_name"`
	StartsAt      time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt        time.Time `gorm:"column:ends_at" json:"ends_at"`
	Status        string    `gorm:"column:status" json:"status"`
	ReportSummary *string   `gorm:"column:report_summary" json:"report_summary,omitempty"`
	Homework      *string   `gorm:"column:homework" json:"homework,omitempty"`
}
