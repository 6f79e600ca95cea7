package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/users/user/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

type RoleController struct {
	DB *gorm.DB
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{DB: db}
}

// GET /api/roles
func (rc *RoleController) List(c *fiber.Ctx) error {
	var rows []model.RoleModel
	if err := rc.DB.WithContext(c.UserContext()).
		Order("role_name ASC").
		Find(&rows).Error; err != nil {
		return helper.FromError(c, apperror.Dependency("failed to load roles", err))
	}
	return helper.JsonOK(c, "OK", rows)
}
