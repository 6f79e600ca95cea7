package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/masters/vehicles/dto"
	"claimcenter_backend/internals/features/masters/vehicles/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

type VehicleController struct {
	DB *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

// GET /api/vehicles/lookup?q=
func (vc *VehicleController) Lookup(c *fiber.Ctx) error {
	q, ok := dto.LookupQuery(c.Query("q"))
	if !ok {
		return helper.JsonOK(c, fmt.Sprintf("enter at least %d characters of the register number", dto.MinLookupChars), []dto.VehicleResponse{})
	}

	var rows []model.VehicleModel
	if err := vc.DB.WithContext(c.UserContext()).
		Where("vehicle_is_active = ?", true).
		Where("vehicle_register_no ILIKE ?", "%"+helper.EscapeLike(q)+"%").
		Order("vehicle_register_no ASC").
		Limit(dto.MaxLookupResults).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, apperror.Dependency("failed to look up vehicles", err))
	}
	return helper.JsonOK(c, "OK", dto.FromVehicleModels(rows))
}
