package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	purchaseModel "bimbelku_backend/internals/features/purchases/model"
	dto "bimbelku_backend/internals/features/schedules/dto"
	model "bimbelku_backend/internals/features/schedules/model"
	helper "bimbelku_backend/internals/helpers"
)

type ScheduleMentorController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewScheduleMentorController(db *gorm.DB) *ScheduleMentorController {
	return &ScheduleMentorController{DB: db, validate: validator.New()}
}

/* ======================== MY SCHEDULES ======================== */

// GET /api/mentors/my-schedules — semua sesi milik mentor
func (ctl *ScheduleMentorController) MySchedules(c *fiber.Ctx) error {
	mentorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.ScheduleModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("mentor_id = ?", mentorID).
		Order("starts_at DESC").
		Find(&rows).Error; err != nil {
		log.Printf("[Schedule.Mentor] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return helper.JsonOK(c, "OK", rows)
}

/* ======================== CREATE REPORT ======================== */

// POST /api/mentors/schedules/:id/report
// Satu transaksi: buat laporan, tandai jadwal completed, naikkan
// used_sessions paket aktif siswa (tidak pernah melewati total;
// mencapai total berarti paket finished).
func (ctl *ScheduleMentorController) CreateReport(c *fiber.Ctx) error {
	mentorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.CreateSessionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var report model.SessionReportModel
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var sch model.ScheduleModel
		if er := tx.First(&sch, "id = ?", scheduleID).Error; er != nil {
			return er
		}
		// Ownership: mentor hanya boleh melapor sesi miliknya.
		if sch.MentorID != mentorID {
			return errNotScheduleOwner
		}
		if sch.Status != model.ScheduleStatusScheduled {
			return errScheduleNotOpen
		}

		report = model.SessionReportModel{
			ScheduleID: sch.ID,
			MentorID:   mentorID,
			Summary:    req.Summary,
			Homework:   req.Homework,
		}
		if er := tx.Create(&report).Error; er != nil {
			return er
		}

		if er := tx.Model(&model.ScheduleModel{}).
			Where("id = ?", sch.ID).
			Update("status", model.ScheduleStatusCompleted).Error; er != nil {
			return er
		}

		// Paket aktif siswa yang masih dalam masa berlaku. Guard
		// used < total di WHERE supaya tidak pernah melewati total
		// walau ada request paralel.
		var up purchaseModel.UserPackageModel
		er := tx.Where("user_id = ? AND status = ? AND (expires_at IS NULL OR expires_at > ?)",
			sch.StudentID, purchaseModel.UserPackageStatusActive, time.Now().UTC()).
			Order("created_at ASC").
			First(&up).Error
		if errors.Is(er, gorm.ErrRecordNotFound) {
			return nil // sesi di luar paket, tidak ada counter yang naik
		}
		if er != nil {
			return er
		}

		res := tx.Model(&purchaseModel.UserPackageModel{}).
			Where("id = ? AND used_sessions < total_sessions", up.ID).
			Update("used_sessions", gorm.Expr("used_sessions + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // sudah mentok, biarkan
		}

		return tx.Model(&purchaseModel.UserPackageModel{}).
			Where("id = ? AND used_sessions >= total_sessions AND status = ?",
				up.ID, purchaseModel.UserPackageStatusActive).
			Update("status", purchaseModel.UserPackageStatusFinished).Error
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
		case errors.Is(txErr, errNotScheduleOwner):
			return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
		case errors.Is(txErr, errScheduleNotOpen):
			return helper.JsonError(c, fiber.StatusConflict, "Sesi sudah dilaporkan atau tidak berstatus scheduled")
		case isUniqueViolation(txErr):
			return helper.JsonError(c, fiber.StatusConflict, "Laporan untuk sesi ini sudah ada")
		}
		log.Printf("[Schedule.Report] tx error: %v", txErr)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat laporan")
	}

	return helper.JsonCreated(c, "Laporan sesi berhasil dibuat", report)
}

var (
	errNotScheduleOwner = errors.New("schedule not owned by mentor")
	errScheduleNotOpen  = errors.New("schedule not open for report")
)
