package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	branchController "claimcenter_backend/internals/features/masters/branches/controller"
	carModelController "claimcenter_backend/internals/features/masters/car_models/controller"
	mileageController "claimcenter_backend/internals/features/masters/mileages/controller"
	vehicleController "claimcenter_backend/internals/features/masters/vehicles/controller"
)

// MastersRoutes expects api to already sit behind AuthJWT.
func MastersRoutes(api fiber.Router, db *gorm.DB) {
	branches := branchController.NewBranchController(db)
	carModels := carModelController.NewCarModelController(db)
	mileages := mileageController.NewMileageController(db)
	vehicles := vehicleController.NewVehicleController(db)

	api.Get("/branches", branches.List)
	api.Get("/car-models", carModels.List)
	api.Get("/mileages", mileages.List)
	api.Get("/vehicles/lookup", vehicles.Lookup)
}
