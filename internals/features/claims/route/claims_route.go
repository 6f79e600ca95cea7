package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/constants"
	fileController "claimcenter_backend/internals/features/claims/claim_files/controller"
	"claimcenter_backend/internals/features/claims/controller"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/helpers/storage"
	authMiddleware "claimcenter_backend/internals/middlewares/auth"
)

// ClaimsRoutes mounts claims, evidence files and the dashboard under api,
// which must already carry the auth middleware.
func ClaimsRoutes(api fiber.Router, db *gorm.DB, store storage.ObjectStore) {
	RegisterClaimRoutes(api, repository.NewGormRepository(db), store)
}

// RegisterClaimRoutes is ClaimsRoutes over any repository.
func RegisterClaimRoutes(api fiber.Router, repo repository.Repository, store storage.ObjectStore) {
	ctrl := controller.NewClaimController(repo)
	files := fileController.NewClaimFileController(repo, store)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("claim decisions"), constants.AdminOnly...)

	claims := api.Group("/claims")
	claims.Get("/", ctrl.List)
	claims.Post("/", ctrl.Create)
	claims.Get("/export", ctrl.Export) // sebelum /:id
	claims.Get("/:id", ctrl.Get)
	claims.Patch("/:id", ctrl.Update)
	claims.Delete("/:id", ctrl.Delete)

	claims.Post("/:id/approve", adminOnly, ctrl.Approve())
	claims.Post("/:id/reject", adminOnly, ctrl.Reject())
	claims.Post("/:id/request-info", adminOnly, ctrl.RequestInfo())

	claims.Get("/:id/files", files.List)
	claims.Post("/:id/files", files.Upload)
	claims.Delete("/:id/files/:fileId", files.Delete)

	api.Get("/dashboard/stats", ctrl.Stats)
}
