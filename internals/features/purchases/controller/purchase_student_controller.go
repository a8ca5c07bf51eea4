package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	packageModel "bimbelku_backend/internals/features/packages/model"
	dto "bimbelku_backend/internals/features/purchases/dto"
	model "bimbelku_backend/internals/features/purchases/model"
	helper "bimbelku_backend/internals/helpers"
)

type PurchaseStudentController struct {
	DB       *gorm.DB
	Cfg      *configs.Config
	validate *validator.Validate
}

func NewPurchaseStudentController(db *gorm.DB, cfg *configs.Config) *PurchaseStudentController {
	return &PurchaseStudentController{DB: db, Cfg: cfg, validate: validator.New()}
}

/* ======================== PURCHASE REQUEST ======================== */

// POST /api/students/purchase-request
// Multipart: field "package_id" + file "proof".
// Satu transaksi: re-check pasangan (siswa, paket) → insert user_package
// pending → insert payment pending. Gagal di tengah → rollback total,
// file bukti ikut dibersihkan.
func (ctl *PurchaseStudentController) PurchaseRequest(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	packageID, err := uuid.Parse(c.FormValue("package_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "package_id tidak valid")
	}

	proofFile, err := c.FormFile("proof")
	if err != nil || proofFile == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Bukti pembayaran wajib diunggah")
	}

	// Paket harus ada & masih dijual
	var pkg packageModel.PackageModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("id = ? AND is_active = ?", packageID, true).
		First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paket tidak ditemukan")
		}
		log.Printf("[Purchase.Request] cek paket error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	// Paket yang lewat masa berlaku jangan memblokir pengajuan baru.
	ctl.expireLapsedPackages(c, studentID)

	// Fail fast sebelum simpan file: sudah ada pengajuan aktif/pending?
	exists, err := ctl.hasOpenUserPackage(c, studentID, packageID)
	if err != nil {
		log.Printf("[Purchase.Request] cek pengajuan error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if exists {
		return helper.JsonError(c, fiber.StatusConflict, "Masih ada pengajuan paket yang pending/aktif untuk paket ini")
	}

	// Simpan bukti di luar transaksi; dibersihkan kalau transaksi gagal.
	proofPath, err := helper.SaveProofImage(ctl.Cfg.UploadDir, "payment-proofs", proofFile)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Bukti pembayaran tidak valid: "+err.Error())
	}

	up := model.UserPackageModel{
		UserID:        studentID,
		PackageID:     packageID,
		Status:        model.UserPackageStatusPending,
		TotalSessions: pkg.TotalSessions,
		UsedSessions:  0,
	}
	var pay model.PaymentModel

	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		// Re-check di dalam transaksi (partial unique index jadi backstop race)
		var count int64
		if er := tx.Model(&model.UserPackageModel{}).
			Where("user_id = ? AND package_id = ? AND status IN ?",
				studentID, packageID,
				[]string{model.UserPackageStatusPending, model.UserPackageStatusActive}).
			Count(&count).Error; er != nil {
			return er
		}
		if count > 0 {
			return errDuplicatePurchase
		}

		if er := tx.Create(&up).Error; er != nil {
			return er
		}

		pay = model.PaymentModel{
			UserPackageID: up.ID,
			AmountIDR:     pkg.PriceIDR,
			ProofURL:      proofPath,
			Status:        model.PaymentStatusPending,
		}
		if er := tx.Create(&pay).Error; er != nil {
			return er
		}
		return nil
	})

	if txErr != nil {
		helper.RemoveUploadedFile(proofPath)
		if errors.Is(txErr, errDuplicatePurchase) || isUniqueViolation(txErr) {
			return helper.JsonError(c, fiber.StatusConflict, "Masih ada pengajuan paket yang pending/aktif untuk paket ini")
		}
		log.Printf("[Purchase.Request] tx error: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat pengajuan paket")
	}

	return helper.JsonCreated(c, "Pengajuan paket berhasil dibuat", dto.PurchaseResponse{
		UserPackage: up,
		Payment:     pay,
	})
}

/* ======================== MY PACKAGES ======================== */

// GET /api/students/my-packages — paket milik sendiri yang tidak disembunyikan
func (ctl *PurchaseStudentController) MyPackages(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	// Status expired ditegakkan saat dibaca: row aktif yang sudah lewat
	// expires_at diturunkan dulu sebelum listing.
	ctl.expireLapsedPackages(c, studentID)

	var rows []dto.MyPackageRow
	if err := ctl.DB.WithContext(c.Context()).
		Table("user_packages AS up").
		Joins("JOIN packages AS p ON p.id = up.package_id").
		Where("up.user_id = ? AND up.is_hidden_by_student = ?", studentID, false).
		Select(`up.id, up.package_id, p.name AS package_name, p.price_idr,
			up.status, up.total_sessions, up.used_sessions,
			up.started_at, up.expires_at, up.created_at`).
		Order("up.created_at DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[Purchase.MyPackages] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonOK(c, "OK", rows)
}

/* ======================== HIDE BULK ======================== */

// PUT /api/students/my-packages/hide-bulk
// Hanya row milik siswa pemanggil yang tersentuh; id milik orang lain
// dilewati diam-diam. Response memuat jumlah row yang berubah.
func (ctl *PurchaseStudentController) HideBulk(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.HideUserPackagesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "userPackageIds tidak boleh kosong")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.UserPackageModel{}).
		Where("id IN ? AND user_id = ?", req.UserPackageIDs, studentID).
		Update("is_hidden_by_student", true)
	if res.Error != nil {
		log.Printf("[Purchase.HideBulk] update error: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyembunyikan paket")
	}

	return helper.JsonUpdated(c, "Paket berhasil disembunyikan", fiber.Map{
		"affected": res.RowsAffected,
	})
}

/* ======================== INTERNAL ======================== */

var errDuplicatePurchase = errors.New("duplicate purchase request")

// expireLapsedPackages menurunkan paket aktif milik user yang sudah
// melewati expires_at ke status expired. Best effort: kegagalan hanya
// dicatat, request tetap jalan.
func (ctl *PurchaseStudentController) expireLapsedPackages(c *fiber.Ctx, userID uuid.UUID) {
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.UserPackageModel{}).
		Where("user_id = ? AND status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			userID, model.UserPackageStatusActive, time.Now().UTC()).
		Update("status", model.UserPackageStatusExpired).Error; err != nil {
		log.Printf("[Purchase] expire sweep error: %v", err)
	}
}

func (ctl *PurchaseStudentController) hasOpenUserPackage(c *fiber.Ctx, studentID, packageID uuid.UUID) (bool, error) {
	var count int64
	err := ctl.DB.WithContext(c.Context()).
		Model(&model.UserPackageModel{}).
		Where("user_id = ? AND package_id = ? AND status IN ?",
			studentID, packageID,
			[]string{model.UserPackageStatusPending, model.UserPackageStatusActive}).
		Count(&count).Error
	return count > 0, err
}
