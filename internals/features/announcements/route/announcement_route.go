package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/announcements/controller"
	notifService "bimbelku_backend/internals/features/notifications/service"
)

// AnnouncementUserRoutes — listing + mark-read (mount di /api/students
// maupun /api/mentors; query menyaring per role token).
func AnnouncementUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAnnouncementController(db, nil)

	r.Get("/announcements", ctl.ListMine)
	r.Put("/announcements/:id/read", ctl.MarkRead)
}

// AnnouncementAdminRoutes — broadcast oleh admin (mount di /api/admin).
func AnnouncementAdminRoutes(r fiber.Router, db *gorm.DB, push *notifService.PushService) {
	ctl := controller.NewAnnouncementController(db, push)

	r.Post("/announcements", ctl.Create)
}
