package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/schedules/dto"
	model "bimbelku_backend/internals/features/schedules/model"
	userModel "bimbelku_backend/internals/features/users/user/model"
	helper "bimbelku_backend/internals/helpers"
)

type ScheduleAdminController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewScheduleAdminController(db *gorm.DB) *ScheduleAdminController {
	return &ScheduleAdminController{DB: db, validate: validator.New()}
}

/* ======================== CREATE ======================== */

// POST /api/admin/schedules
func (ctl *ScheduleAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Kedua pihak harus ada dengan role yang benar.
	if err := ctl.ensureUserHasRole(c, req.StudentID, constants.RoleSiswa); err != nil {
		return err
	}
	if err := ctl.ensureUserHasRole(c, req.MentorID, constants.RoleMentor); err != nil {
		return err
	}

	m := model.ScheduleModel{
		StudentID: req.StudentID,
		MentorID:  req.MentorID,
		Subject:   req.Subject,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Status:    model.ScheduleStatusScheduled,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		log.Printf("[Schedule.Create] create error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat jadwal")
	}
	return helper.JsonCreated(c, "Jadwal berhasil dibuat", m)
}

/* ======================== LIST ======================== */

// GET /api/admin/schedules?status=&page=&limit=
// Row yang disembunyikan siswa tetap tampil di sini: soft-hide hanya
// menyaring listing milik siswa sendiri.
func (ctl *ScheduleAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.ScheduleModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []model.ScheduleModel
	if err := q.Order("starts_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonList(c, "OK", rows,
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* ======================== VERIFY REPORT ======================== */

// PUT /api/admin/session-reports/:id/verify — gerbang visibilitas laporan
func (ctl *ScheduleAdminController) VerifyReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.SessionReportModel{}).
		Where("id = ?", id).
		Update("is_verified", true)
	if res.Error != nil {
		log.Printf("[Report.Verify] update error: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memverifikasi laporan")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Laporan tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Laporan berhasil diverifikasi", fiber.Map{"id": id})
}

/* ======================== INTERNAL ======================== */

func (ctl *ScheduleAdminController) ensureUserHasRole(c *fiber.Ctx, id uuid.UUID, role constants.Role) error {
	var user userModel.UserModel
	err := ctl.DB.WithContext(c.Context()).
		Where("id = ? AND role = ? AND is_active = ?", id, role, true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, role.Label()+" tidak ditemukan")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return nil
}

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
