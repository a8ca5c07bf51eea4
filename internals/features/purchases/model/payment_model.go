package model

import (
	"time"

	"github.com/google/uuid"
)

// Status verifikasi pembayaran.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

// PaymentModel merepresentasikan tabel payments: bukti bayar manual
// yang terikat 1:1 ke satu UserPackage sejak dibuat.
type PaymentModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserPackageID uuid.UUID  `gorm:"type:uuid;not null;unique" json:"user_package_id"`
	AmountIDR     int64      `gorm:"column:amount_idr;not null" json:"amount_idr"`
	ProofURL      string     `gorm:"not null" json:"proof_url"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	VerifiedBy    *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
