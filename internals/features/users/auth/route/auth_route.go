// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "claimcenter_backend/internals/features/users/auth/controller"
	rateLimiter "claimcenter_backend/internals/middlewares"
)

// AuthRoutes: login is public, the rest sit behind authMW.
func AuthRoutes(app *fiber.App, db *gorm.DB, authMW fiber.Handler) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)

	protected := baseAuth.Group("", authMW)
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
	protected.Post("/change-password", authController.ChangePassword)
}
