package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	controller "bimbelku_backend/internals/features/purchases/controller"
)

// PurchaseStudentRoutes — workflow pembelian paket oleh siswa
// (mount di group /api/students).
func PurchaseStudentRoutes(r fiber.Router, db *gorm.DB, cfg *configs.Config) {
	ctl := controller.NewPurchaseStudentController(db, cfg)

	r.Post("/purchase-request", ctl.PurchaseRequest)
	r.Get("/my-packages", ctl.MyPackages)
	r.Put("/my-packages/hide-bulk", ctl.HideBulk)
}

// PaymentAdminRoutes — review pembayaran oleh admin (mount di /api/admin).
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPaymentAdminController(db)

	payments := r.Group("/payments")
	payments.Get("/", ctl.List)
	payments.Put("/:id/verify", ctl.Verify)
}
