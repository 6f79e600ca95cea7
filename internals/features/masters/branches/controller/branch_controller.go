package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/masters/branches/dto"
	"claimcenter_backend/internals/features/masters/branches/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

// GET /api/branches
func (bc *BranchController) List(c *fiber.Ctx) error {
	var rows []model.BranchModel
	if err := bc.DB.WithContext(c.UserContext()).
		Where("branch_is_active = ?", true).
		Order("branch_code ASC").
		Find(&rows).Error; err != nil {
		return helper.FromError(c, apperror.Dependency("failed to load branches", err))
	}
	return helper.JsonOK(c, "OK", dto.FromBranchModels(rows))
}
