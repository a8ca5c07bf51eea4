package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	authMiddleware "bimbelku_backend/internals/middlewares/auth"

	announcementRoute "bimbelku_backend/internals/features/announcements/route"
	notificationRoute "bimbelku_backend/internals/features/notifications/route"
	notifService "bimbelku_backend/internals/features/notifications/service"
	packageRoute "bimbelku_backend/internals/features/packages/route"
	purchaseRoute "bimbelku_backend/internals/features/purchases/route"
	scheduleRoute "bimbelku_backend/internals/features/schedules/route"
	authRoute "bimbelku_backend/internals/features/users/auth/route"
	userRoute "bimbelku_backend/internals/features/users/user/route"
)

// SetupRoutes memasang seluruh endpoint aplikasi.
// Tiga group utama per role, masing-masing di belakang auth + role guard.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, push *notifService.PushService) {
	log.Println("📌 Setup routes...")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	/* =========================================
	   🔓 AUTH (public + protected)
	========================================= */
	authRoute.AuthRoutes(app, db, cfg)

	auth := authMiddleware.AuthMiddleware(db, cfg.JWTSecret)

	/* =========================================
	   🎓 SISWA — /api/students
	========================================= */
	students := app.Group("/api/students",
		auth,
		authMiddleware.RequireRoles(constants.RoleSiswa),
	)
	packageRoute.PackagePublicRoutes(students, db)
	purchaseRoute.PurchaseStudentRoutes(students, db, cfg)
	scheduleRoute.ScheduleStudentRoutes(students, db)
	announcementRoute.AnnouncementUserRoutes(students, db)
	notificationRoute.NotificationUserRoutes(students, db)

	/* =========================================
	   🧑‍🏫 MENTOR — /api/mentors
	========================================= */
	mentors := app.Group("/api/mentors",
		auth,
		authMiddleware.RequireRoles(constants.RoleMentor),
	)
	scheduleRoute.ScheduleMentorRoutes(mentors, db)
	announcementRoute.AnnouncementUserRoutes(mentors, db)
	notificationRoute.NotificationUserRoutes(mentors, db)

	/* =========================================
	   🛠️ ADMIN — /api/admin
	========================================= */
	admin := app.Group("/api/admin",
		auth,
		authMiddleware.RequireRoles(constants.RoleAdmin),
	)
	userRoute.UserAdminRoutes(admin, db)
	packageRoute.PackageAdminRoutes(admin, db)
	purchaseRoute.PaymentAdminRoutes(admin, db)
	scheduleRoute.ScheduleAdminRoutes(admin, db)
	announcementRoute.AnnouncementAdminRoutes(admin, db, push)

	log.Println("✅ Semua route terpasang")
}
