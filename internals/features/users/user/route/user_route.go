package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/constants"
	userController "claimcenter_backend/internals/features/users/user/controller"
	authMiddleware "claimcenter_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts /users under an already-authenticated admin group.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	users := admin.Group("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...),
	)

	users.Get("/", userCtrl.List)
	users.Post("/", userCtrl.Create)
	users.Get("/:id", userCtrl.Get)
	users.Patch("/:id", userCtrl.Update)
	users.Delete("/:id", userCtrl.Delete)
	users.Post("/:id/reset-password", userCtrl.ResetPassword)
}

// RoleRoutes: dropdown data for the user form, any authenticated caller.
func RoleRoutes(api fiber.Router, db *gorm.DB) {
	api.Get("/roles", userController.NewRoleController(db).List)
}
