package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/masters/mileages/dto"
	"claimcenter_backend/internals/features/masters/mileages/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

type MileageController struct {
	DB *gorm.DB
}

func NewMileageController(db *gorm.DB) *MileageController {
	return &MileageController{DB: db}
}

// GET /api/mileages
func (mc *MileageController) List(c *fiber.Ctx) error {
	var rows []model.MileageModel
	if err := mc.DB.WithContext(c.UserContext()).
		Where("mileage_is_active = ?", true).
		Order("mileage_sort_order ASC").
		Find(&rows).Error; err != nil {
		return helper.FromError(c, apperror.Dependency("failed to load mileage options", err))
	}
	return helper.JsonOK(c, "OK", dto.BuildMileageOptions(rows))
}
