// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/constants"
	claimsRoute "claimcenter_backend/internals/features/claims/route"
	mastersRoute "claimcenter_backend/internals/features/masters/route"
	authRoute "claimcenter_backend/internals/features/users/auth/route"
	userRoute "claimcenter_backend/internals/features/users/user/route"
	"claimcenter_backend/internals/helpers/storage"
	authMiddleware "claimcenter_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.ObjectStore) {
	startTime = time.Now()
	authMW := authMiddleware.AuthMiddleware(db)

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, authMW)

	// ===================== PRIVATE (JWT) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMW)

	log.Println("[INFO] Mounting Claims routes...")
	claimsRoute.ClaimsRoutes(private, db, store)

	log.Println("[INFO] Mounting Masters routes...")
	mastersRoute.MastersRoutes(private, db)
	userRoute.RoleRoutes(private, db)

	// ===================== ADMIN (di bawah private) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := private.Group("/admin",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the admin area"), constants.AdminOnly...),
	)
	userRoute.UserAdminRoutes(admin, db)
}
