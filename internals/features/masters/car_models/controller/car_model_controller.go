package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/masters/car_models/dto"
	"claimcenter_backend/internals/features/masters/car_models/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

type CarModelController struct {
	DB *gorm.DB
}

func NewCarModelController(db *gorm.DB) *CarModelController {
	return &CarModelController{DB: db}
}

// GET /api/car-models
func (cc *CarModelController) List(c *fiber.Ctx) error {
	var rows []model.CarModelModel
	if err := cc.DB.WithContext(c.UserContext()).
		Where("car_model_is_active = ?", true).
		Order("car_model_brand ASC").
		Order("car_model_name ASC").
		Find(&rows).Error; err != nil {
		return helper.FromError(c, apperror.Dependency("failed to load car models", err))
	}
	return helper.JsonOK(c, "OK", dto.FromCarModelModels(rows))
}
