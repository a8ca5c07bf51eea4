package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PushSubscriptionModel menyimpan payload subscription browser apa adanya
// (JSONB), satu per (user, endpoint).
type PushSubscriptionModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_push_subscription" json:"user_id"`
	Endpoint     string         `gorm:"not null;uniqueIndex:uq_push_subscription" json:"endpoint"`
	Subscription datatypes.JSON `gorm:"type:jsonb;not null" json:"subscription"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PushSubscriptionModel) TableName() string {
	return "push_subscriptions"
}
