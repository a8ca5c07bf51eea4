package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/users/user/controller"
)

// UserAdminRoutes — manajemen user oleh admin (mount di group /api/admin).
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserAdminController(db)

	users := r.Group("/users")
	users.Get("/", ctl.List)
	users.Get("/:id", ctl.GetByID)
	users.Post("/", ctl.Create)
	users.Put("/:id", ctl.Update)
}
