package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "bimbelku_backend/internals/features/packages/controller"
)

// PackagePublicRoutes — katalog paket (butuh login, semua role).
func PackagePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPackageController(db)
	r.Get("/packages", ctl.ListActive)
}

// PackageAdminRoutes — manajemen paket oleh admin.
func PackageAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPackageController(db)

	pkgs := r.Group("/packages")
	pkgs.Get("/", ctl.List)
	pkgs.Post("/", ctl.Create)
	pkgs.Put("/:id", ctl.Update)
}
