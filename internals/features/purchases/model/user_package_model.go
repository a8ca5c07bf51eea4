package model

import (
	"time"

	"github.com/google/uuid"
)

// Status paket milik siswa.
const (
	UserPackageStatusPending  = "pending"
	UserPackageStatusActive   = "active"
	UserPackageStatusFinished = "finished"
	UserPackageStatusExpired  = "expired"
	UserPackageStatusRejected = "rejected"
)

// UserPackageModel merepresentasikan tabel user_packages:
// instans pembelian sebuah paket oleh siswa.
// Invariant: UsedSessions tidak pernah melebihi TotalSessions
// (dijaga CHECK constraint di DB dan guard di service).
type UserPackageModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	PackageID         uuid.UUID  `gorm:"type:uuid;not null" json:"package_id"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalSessions     int        `gorm:"not null" json:"total_sessions"`
	UsedSessions      int        `gorm:"not null;default:0" json:"used_sessions"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	IsHiddenByStudent bool       `gorm:"not null;default:false" json:"is_hidden_by_student"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserPackageModel) TableName() string {
	return "user_packages"
}
