package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	packageModel "bimbelku_backend/internals/features/packages/model"
	dto "bimbelku_backend/internals/features/purchases/dto"
	model "bimbelku_backend/internals/features/purchases/model"
	helper "bimbelku_backend/internals/helpers"
)

type PaymentAdminController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewPaymentAdminController(db *gorm.DB) *PaymentAdminController {
	return &PaymentAdminController{DB: db, validate: validator.New()}
}

/* ======================== LIST ======================== */

// GET /api/admin/payments?status=&page=&limit=
func (ctl *PaymentAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.WithContext(c.Context()).
		Table("payments AS pay").
		Joins("JOIN user_packages AS up ON up.id = pay.user_package_id").
		Joins("JOIN users AS u ON u.id = up.user_id").
		Joins("JOIN packages AS p ON p.id = up.package_id")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		switch status {
		case model.PaymentStatusPending, model.PaymentStatusVerified, model.PaymentStatusRejected:
			q = q.Where("pay.status = ?", status)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "Status filter tidak dikenal")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[Payment.List] count error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []dto.PaymentAdminRow
	if err := q.Select(`pay.id, pay.user_package_id, u.full_name AS student_name,
			p.name AS package_name, pay.amount_idr, pay.proof_url, pay.status, pay.created_at`).
		Order("pay.created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		log.Printf("[Payment.List] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonList(c, "OK", rows,
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* ======================== VERIFY ======================== */

// PUT /api/admin/payments/:id/verify — body {approve: bool}
// Approve: payment verified + user_package active (start/expiry dari durasi paket).
// Reject: payment rejected + user_package rejected.
// Keduanya dalam satu transaksi.
func (ctl *PaymentAdminController) Verify(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}

	var pay model.PaymentModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if er := tx.First(&pay, "id = ?", paymentID).Error; er != nil {
			return er
		}
		if pay.Status != model.PaymentStatusPending {
			return errAlreadyReviewed
		}

		var up model.UserPackageModel
		if er := tx.First(&up, "id = ?", pay.UserPackageID).Error; er != nil {
			return er
		}

		now := time.Now().UTC()
		pay.VerifiedBy = &adminID
		pay.VerifiedAt = &now

		if req.Approve {
			pay.Status = model.PaymentStatusVerified

			var pkg packageModel.PackageModel
			if er := tx.First(&pkg, "id = ?", up.PackageID).Error; er != nil {
				return er
			}
			expires := now.Add(time.Duration(pkg.DurationDays) * 24 * time.Hour)
			if er := tx.Model(&up).Updates(map[string]interface{}{
				"status":     model.UserPackageStatusActive,
				"started_at": now,
				"expires_at": expires,
			}).Error; er != nil {
				return er
			}
		} else {
			pay.Status = model.PaymentStatusRejected
			if er := tx.Model(&up).
				Update("status", model.UserPackageStatusRejected).Error; er != nil {
				return er
			}
		}

		return tx.Model(&model.PaymentModel{}).
			Where("id = ?", pay.ID).
			Updates(map[string]interface{}{
				"status":      pay.Status,
				"verified_by": pay.VerifiedBy,
				"verified_at": pay.VerifiedAt,
			}).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		}
		if errors.Is(txErr, errAlreadyReviewed) {
			return helper.JsonError(c, fiber.StatusConflict, "Pembayaran sudah direview")
		}
		log.Printf("[Payment.Verify] tx error: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memverifikasi pembayaran")
	}

	return helper.JsonUpdated(c, "Pembayaran berhasil direview", pay)
}

var errAlreadyReviewed = errors.New("payment already reviewed")

// isUniqueViolation mendeteksi pelanggaran unique index Postgres.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") ||
		strings.Contains(low, "23505") ||
		strings.Contains(low, "unique constraint")
}
