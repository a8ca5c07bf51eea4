package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "bimbelku_backend/internals/features/packages/dto"
	model "bimbelku_backend/internals/features/packages/model"
	helper "bimbelku_backend/internals/helpers"
)

type PackageController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{DB: db, validate: validator.New()}
}

/* ======================== PUBLIC LIST ======================== */
// GET /api/packages — katalog paket aktif untuk siswa
func (ctl *PackageController) ListActive(c *fiber.Ctx) error {
	var rows []model.PackageModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("is_active = ?", true).
		Order("price_idr ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[Package.ListActive] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.JsonOK(c, "OK", rows)
}

/* ======================== ADMIN ======================== */

// GET /api/admin/packages — semua paket, termasuk nonaktif
func (ctl *PackageController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.PackageModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []model.PackageModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonList(c, "OK", rows,
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

// POST /api/admin/packages
func (ctl *PackageController) Create(c *fiber.Ctx) error {
	var req dto.CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		log.Printf("[Package.Create] create error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat paket")
	}
	return helper.JsonCreated(c, "Paket berhasil dibuat", m)
}

// PUT /api/admin/packages/:id — partial update, is_active = soft-disable
func (ctl *PackageController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var pkg model.PackageModel
	if err := ctl.DB.WithContext(c.Context()).First(&pkg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paket tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PriceIDR != nil {
		updates["price_idr"] = *req.PriceIDR
	}
	if req.TotalSessions != nil {
		updates["total_sessions"] = *req.TotalSessions
	}
	if req.DurationDays != nil {
		updates["duration_days"] = *req.DurationDays
	}
	if req.Curriculum != nil {
		updates["curriculum"] = *req.Curriculum
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&pkg).Updates(updates).Error; err != nil {
		log.Printf("[Package.Update] update error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah paket")
	}
	return helper.JsonUpdated(c, "Paket berhasil diubah", pkg)
}
