// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	controller "bimbelku_backend/internals/features/users/auth/controller"
	"bimbelku_backend/internals/middlewares"
	authMiddleware "bimbelku_backend/internals/middlewares/auth"
)

// AuthRoutes memasang endpoint autentikasi di /api/auth.
func AuthRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	authController := controller.NewAuthController(db, cfg)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", middlewares.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", middlewares.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/google", middlewares.LoginRateLimiter(), authController.GoogleLogin)

	// 🔒 Protected
	protected := app.Group("/api/auth", authMiddleware.AuthMiddleware(db, cfg.JWTSecret))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
}
