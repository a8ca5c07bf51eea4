package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlacklistModel menyimpan access token yang sudah di-logout
// sampai masa berlakunya habis.
type TokenBlacklistModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token     string    `gorm:"not null;index" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklists"
}
