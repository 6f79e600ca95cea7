package model

import (
	"time"

	"github.com/google/uuid"
)

type CarModelModel struct {
	CarModelID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:car_model_id" json:"car_model_id"`
	CarModelCode      string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_car_models_code;column:car_model_code" json:"car_model_code"`
	CarModelName      string    `gorm:"type:varchar(100);not null;column:car_model_name" json:"car_model_name"`
	CarModelBrand     string    `gorm:"type:varchar(100);not null;column:car_model_brand" json:"car_model_brand"`
	CarModelIsActive  bool      `gorm:"not null;default:true;column:car_model_is_active" json:"car_model_is_active"`
	CarModelCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:car_model_created_at" json:"car_model_created_at"`
}

func (CarModelModel) TableName() string { return "car_models" }
