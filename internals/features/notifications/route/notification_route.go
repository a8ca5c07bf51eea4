package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/features/notifications/controller"
)

// NotificationUserRoutes — endpoint push subscription untuk user login.
func NotificationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPushController(db)

	r.Post("/push-subscribe", ctl.Subscribe)
}
