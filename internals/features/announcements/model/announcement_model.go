package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Target "all" berarti semua role.
const TargetAll = "all"

// AnnouncementModel merepresentasikan tabel announcements: pesan broadcast
// yang ditargetkan per role.
type AnnouncementModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Body        string         `gorm:"not null" json:"body"`
	TargetRoles pq.StringArray `gorm:"column:target_roles;type:text[];not null;default:'{all}'" json:"target_roles"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}
