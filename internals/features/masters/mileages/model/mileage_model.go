package model

import "github.com/google/uuid"

type MileageModel struct {
	MileageID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:mileage_id" json:"mileage_id"`
	MileageValue     int       `gorm:"not null;uniqueIndex:uq_mileages_value;column:mileage_value" json:"mileage_value"`
	MileageLabel     string    `gorm:"type:varchar(100);not null;column:mileage_label" json:"mileage_label"`
	MileageSortOrder int       `gorm:"not null;default:0;column:mileage_sort_order" json:"mileage_sort_order"`
	MileageIsActive  bool      `gorm:"not null;default:true;column:mileage_is_active" json:"mileage_is_active"`
}

func (MileageModel) TableName() string { return "mileages" }
