package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "bimbelku_backend/internals/features/announcements/dto"
	model "bimbelku_backend/internals/features/announcements/model"
	notifService "bimbelku_backend/internals/features/notifications/service"
	helper "bimbelku_backend/internals/helpers"
)

type AnnouncementController struct {
	DB       *gorm.DB
	Push     *notifService.PushService
	validate *validator.Validate
}

func NewAnnouncementController(db *gorm.DB, push *notifService.PushService) *AnnouncementController {
	return &AnnouncementController{DB: db, Push: push, validate: validator.New()}
}

/* ======================== LIST (semua role) ======================== */

// GET /api/students/announcements (dan /api/mentors/announcements)
// Pengumuman untuk role pemanggil atau "all", left join status baca sendiri.
func (ctl *AnnouncementController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var rows []dto.AnnouncementRow
	if err := ctl.DB.WithContext(c.Context()).
		Table("announcements AS a").
		Joins("LEFT JOIN user_announcement_statuses AS st ON st.announcement_id = a.id AND st.user_id = ?", userID).
		Where("? = ANY(a.target_roles) OR ? = ANY(a.target_roles)", model.TargetAll, role.String()).
		Select("a.id, a.title, a.body, a.created_at, st.read_at, st.read_at IS NOT NULL AS is_read").
		Order("a.created_at DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[Announcement.List] query error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.JsonOK(c, "OK", rows)
}

/* ======================== MARK READ ======================== */

// PUT /api/students/announcements/:id/read
// Idempoten: baca ulang pengumuman yang sama tidak mengubah apa pun.
func (ctl *AnnouncementController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	announcementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.AnnouncementModel{}).
		Where("id = ?", announcementID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengumuman tidak ditemukan")
	}

	status := model.UserAnnouncementStatusModel{
		AnnouncementID: announcementID,
		UserID:         userID,
	}
	if err := ctl.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&status).Error; err != nil {
		log.Printf("[Announcement.MarkRead] upsert error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menandai pengumuman")
	}

	return helper.JsonUpdated(c, "Pengumuman ditandai sudah dibaca", fiber.Map{
		"announcement_id": announcementID,
	})
}

/* ======================== CREATE (admin) ======================== */

// POST /api/admin/announcements — simpan + fan-out web push (best effort)
func (ctl *AnnouncementController) Create(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := ctl.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel(adminID)
	if err := ctl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		log.Printf("[Announcement.Create] create error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat pengumuman")
	}

	// Push ke role target; kegagalan push tidak menggagalkan request.
	if ctl.Push != nil {
		go ctl.Push.BroadcastToRoles(m.TargetRoles, m.Title, m.Body)
	}

	return helper.JsonCreated(c, "Pengumuman berhasil dibuat", m)
}
