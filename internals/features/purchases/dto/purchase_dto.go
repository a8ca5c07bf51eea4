package dto

import (
	"time"

	"github.com/google/uuid"

	purchaseModel "bimbelku_backend/internals/features/purchases/model"
)

/* ===================== REQUEST ===================== */

// HideUserPackagesRequest — body PUT /my-packages/hide-bulk
type HideUserPackagesRequest struct {
	UserPackageIDs []uuid.UUID `json:"userPackageIds" validate:"required,min=1"`
}

// VerifyPaymentRequest — body PUT /admin/payments/:id/verify
type VerifyPaymentRequest struct {
	Approve bool `json:"approve"`
}

/* ===================== RESPONSE ===================== */

// PurchaseResponse — hasil purchase-request: kedua row yang dibuat.
type PurchaseResponse struct {
	UserPackage purchaseModel.UserPackageModel `json:"user_package"`
	Payment     purchaseModel.PaymentModel     `json:"payment"`
}

// MyPackageRow — join user_packages + packages untuk listing siswa.
type MyPackageRow struct {
	ID            uuid.UUID  `gorm:"column:id" json:"id"`
	PackageID     uuid.UUID  `gorm:"column:package_id" json:"package_id"`
	PackageName   string     `gorm:"column:package_name" json:"package_name"`
	PriceIDR      int64      `gorm:"column:price_idr" json:"price_idr"`
	Status        string     `gorm:"column:status" json:"status"`
	TotalSessions int        `gorm:"column:total_sessions" json:"total_sessions"`
	UsedSessions  int        `gorm:"column:used_sessions" json:"used_sessions"`
	StartedAt     *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	ExpiresAt     *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
}

// PaymentAdminRow — join payments + users + packages untuk review admin.
type PaymentAdminRow struct {
	ID            uuid.UUID `gorm:"column:id" json:"id"`
	UserPackageID uuid.UUID `gorm:"column:user_package_id" json:"user_package_id"`
	StudentName   string    `gorm:"column:student_name" json:"student_name"`
	PackageName   string    `gorm:"column:package_name" json:"package_name"`
	AmountIDR     int64     `gorm:"column:amount_idr" json:"amount_idr"`
	ProofURL      string    `gorm:"column:proof_url" json:"proof_url"`
	Status        string    `gorm:"column:status" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}
