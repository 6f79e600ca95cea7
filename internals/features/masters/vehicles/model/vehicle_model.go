package model

import "github.com/google/uuid"

// VehicleModel is the fleet register the claim form looks vehicles up in.
type VehicleModel struct {
	VehicleID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:vehicle_id" json:"vehicle_id"`
	VehicleInventoryItemID int       `gorm:"not null;uniqueIndex:uq_vehicles_inventory_item;column:vehicle_inventory_item_id" json:"vehicle_inventory_item_id"`
	VehicleVinNo           string    `gorm:"type:varchar(50);not null;column:vehicle_vin_no" json:"vehicle_vin_no"`
	VehicleRegisterNo      string    `gorm:"type:varchar(30);not null;index:idx_vehicles_register_no;column:vehicle_register_no" json:"vehicle_register_no"`
	VehicleProjectType     string    `gorm:"type:varchar(30);not null;column:vehicle_project_type" json:"vehicle_project_type"`
	VehicleModelName       string    `gorm:"type:varchar(100);not null;column:vehicle_model_name" json:"vehicle_model_name"`
	VehicleCustomerName    string    `gorm:"type:varchar(200);not null;column:vehicle_customer_name" json:"vehicle_customer_name"`
	VehicleIsActive        bool      `gorm:"not null;default:true;column:vehicle_is_active" json:"vehicle_is_active"`
}

func (VehicleModel) TableName() string { return "vehicles" }
