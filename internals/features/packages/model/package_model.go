package model

import (
	"time"

	"github.com/google/uuid"
)

// PackageModel merepresentasikan tabel packages (paket bimbingan yang bisa dibeli)
type PackageModel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	Description   *string   `json:"description,omitempty"`
	PriceIDR      int64     `gorm:"column:price_idr;not null" json:"price_idr"`
	TotalSessions int       `gorm:"not null" json:"total_sessions"`
	DurationDays  int       `gorm:"not null" json:"duration_days"`
	Curriculum    *string   `json:"curriculum,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PackageModel) TableName() string {
	return "packages"
}
