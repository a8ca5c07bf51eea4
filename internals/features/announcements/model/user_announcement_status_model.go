package model

import (
	"time"

	"github.com/google/uuid"
)

// UserAnnouncementStatusModel menyimpan status baca per (pengumuman, user).
// Unique constraint di DB membuat mark-read idempoten.
type UserAnnouncementStatusModel struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_announcement" json:"announcement_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_announcement" json:"user_id"`
	ReadAt         time.Time `gorm:"not null;autoCreateTime" json:"read_at"`
}

func (UserAnnouncementStatusModel) TableName() string {
	return "user_announcement_statuses"
}
