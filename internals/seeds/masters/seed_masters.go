package masters

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	branchModel "claimcenter_backend/internals/features/masters/branches/model"
	carModel "claimcenter_backend/internals/features/masters/car_models/model"
	mileageModel "claimcenter_backend/internals/features/masters/mileages/model"
	vehicleModel "claimcenter_backend/internals/features/masters/vehicles/model"
)

//go:embed data/*.json
var dataFS embed.FS

func readJSON(name string, dst any) error {
	b, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

type branchSeed struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SeedBranches upserts by branch_code; names follow the seed file.
func SeedBranches(db *gorm.DB) error {
	var in []branchSeed
	if err := readJSON("branches.json", &in); err != nil {
		return err
	}
	rows := make([]branchModel.BranchModel, 0, len(in))
	for _, s := range in {
		rows = append(rows, branchModel.BranchModel{BranchCode: s.Code, BranchName: s.Name, BranchIsActive: true})
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"branch_name"}),
	}).Create(&rows).Error
	if err == nil {
		log.Printf("[SEED] branches: %d", len(rows))
	}
	return err
}

type carModelSeed struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

func SeedCarModels(db *gorm.DB) error {
	var in []carModelSeed
	if err := readJSON("car_models.json", &in); err != nil {
		return err
	}
	rows := make([]carModel.CarModelModel, 0, len(in))
	for _, s := range in {
		rows = append(rows, carModel.CarModelModel{
			CarModelCode: s.Code, CarModelName: s.Name, CarModelBrand: s.Brand, CarModelIsActive: true,
		})
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "car_model_code"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err == nil {
		log.Printf("[SEED] car models: %d", len(rows))
	}
	return err
}

type mileageSeed struct {
	Value     int    `json:"value"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

func SeedMileages(db *gorm.DB) error {
	var in []mileageSeed
	if err := readJSON("mileages.json", &in); err != nil {
		return err
	}
	rows := make([]mileageModel.MileageModel, 0, len(in))
	for _, s := range in {
		rows = append(rows, mileageModel.MileageModel{
			MileageValue: s.Value, MileageLabel: s.Label, MileageSortOrder: s.SortOrder, MileageIsActive: true,
		})
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mileage_value"}},
		DoUpdates: clause.AssignmentColumns([]string{"mileage_label", "mileage_sort_order"}),
	}).Create(&rows).Error
	if err == nil {
		log.Printf("[SEED] mileages: %d", len(rows))
	}
	return err
}

type vehicleSeed struct {
	InventoryItemID int    `json:"inventory_item_id"`
	VinNo           string `json:"vin_no"`
	RegisterNo      string `json:"register_no"`
	ProjectType     string `json:"project_type"`
	Model           string `json:"model"`
	CustomerName    string `json:"customer_name"`
}

// SeedVehicles loads the demo fleet used by the register lookup.
func SeedVehicles(db *gorm.DB) error {
	var in []vehicleSeed
	if err := readJSON("vehicles.json", &in); err != nil {
		return err
	}
	rows := make([]vehicleModel.VehicleModel, 0, len(in))
	for _, s := range in {
		rows = append(rows, vehicleModel.VehicleModel{
			VehicleInventoryItemID: s.InventoryItemID,
			VehicleVinNo:           s.VinNo,
			VehicleRegisterNo:      s.RegisterNo,
			VehicleProjectType:     s.ProjectType,
			VehicleModelName:       s.Model,
			VehicleCustomerName:    s.CustomerName,
			VehicleIsActive:        true,
		})
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vehicle_inventory_item_id"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err == nil {
		log.Printf("[SEED] vehicles: %d", len(rows))
	}
	return err
}
