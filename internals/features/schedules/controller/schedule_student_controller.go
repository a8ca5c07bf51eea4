package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "bimbelku_backend/internals/features/schedules/dto"
	model "bimbelku_backend/internals/features/schedules/model"
	helper "bimbelku_backend/internals/helpers"
)

type ScheduleStudentController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewScheduleStudentController(db *gorm.DB) *ScheduleStudentController {
	return &ScheduleStudentController{DB: db, validate: validator.New()}
}

/* ======================== UPCOMING ======================== */

// GET /api/students/my-schedules — sesi terjadwal yang akan datang,
// tanpa pagination (jumlahnya kecil by nature).
func (ctl *ScheduleStudentController) MySchedules(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []dto.UpcomingScheduleRow
	if err := ctl.DB.WithContext(c.Context()).
		Table("schedules AS s").
		Joins("JOIN users AS m ON m.id = s.mentor_id").
		Where("s.student_id = ? AND s.hidden_by_student = ?", studentID, false).
		Where("s.status = ? AND s.starts_at >= ?", model.ScheduleStatusScheduled, time.Now().UTC()).
		Select("s.id, s.subject, m.full_name AS mentor_name, s.starts_at, s.ends_at, s.status").
		Order("s.starts_at ASC").
		Scan(&rows).Error; err != nil {
		log.Printf("[Schedule.My] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonOK(c, "OK", rows)
}

/* ======================== HIDE BULK ======================== */

// PUT /api/students/my-schedules/hide-bulk
// Predikat ownership di WHERE: row milik siswa lain tidak pernah tersentuh.
func (ctl *ScheduleStudentController) HideBulk(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.HideSchedulesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scheduleIds tidak boleh kosong")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.ScheduleModel{}).
		Where("id IN ? AND student_id = ?", req.ScheduleIDs, studentID).
		Update("hidden_by_student", true)
	if res.Error != nil {
		log.Printf("[Schedule.HideBulk] update error: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyembunyikan jadwal")
	}

	return helper.JsonUpdated(c, "Jadwal berhasil disembunyikan", fiber.Map{
		"affected": res.RowsAffected,
	})
}

/* ======================== HISTORY ======================== */

// GET /api/students/my-session-history?search=&page=&limit=
// Riwayat sesi selesai + laporan yang sudah diverifikasi admin.
// Search case-insensitive atas nama mentor, mapel, dan ringkasan laporan;
// filter yang sama dipakai untuk count dan data.
func (ctl *ScheduleStudentController) MySessionHistory(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	base := ctl.DB.WithContext(c.Context()).
		Table("schedules AS s").
		Joins("JOIN users AS m ON m.id = s.mentor_id").
		Joins("LEFT JOIN session_reports AS r ON r.schedule_id = s.id AND r.is_verified = TRUE").
		Where("s.student_id = ? AND s.hidden_by_student = ?", studentID, false).
		Where("s.status <> ?", model.ScheduleStatusScheduled)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		base = base.Where("m.full_name ILIKE ? OR s.subject ILIKE ? OR r.summary ILIKE ?", like, like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		log.Printf("[Schedule.History] count error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []dto.SessionHistoryRow
	if err := base.
		Select(`s.id, s.subject, m.full_name AS mentor_name, s.starts_at, s.ends_at,
			s.status, r.summary AS report_summary, r.homework`).
		Order("s.starts_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		log.Printf("[Schedule.History] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	// Page di luar rentang tetap 200 dengan data kosong.
	if rows == nil {
		rows = []dto.SessionHistoryRow{}
	}

	return helper.JsonList(c, "OK", rows,
		helper.BuildPagination(total, paging.Page, paging.Limit))
}
