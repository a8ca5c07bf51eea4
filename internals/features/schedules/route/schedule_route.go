package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/schedules/controller"
)

// ScheduleStudentRoutes — jadwal & riwayat sesi siswa (mount di /api/students).
func ScheduleStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleStudentController(db)

	r.Get("/my-schedules", ctl.MySchedules)
	r.Put("/my-schedules/hide-bulk", ctl.HideBulk)
	r.Get("/my-session-history", ctl.MySessionHistory)
}

// ScheduleMentorRoutes — jadwal & laporan mentor (mount di /api/mentors).
func ScheduleMentorRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleMentorController(db)

	r.Get("/my-schedules", ctl.MySchedules)
	r.Post("/schedules/:id/report", ctl.CreateReport)
}

// ScheduleAdminRoutes — manajemen jadwal & verifikasi laporan (mount di /api/admin).
func ScheduleAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleAdminController(db)

	r.Post("/schedules", ctl.Create)
	r.Get("/schedules", ctl.List)
	r.Put("/session-reports/:id/verify", ctl.VerifyReport)
}
