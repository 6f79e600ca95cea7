package dto

import (
	"github.com/google/uuid"

	"claimcenter_backend/internals/features/masters/car_models/model"
)

type CarModelResponse struct {
	CarModelID uuid.UUID `json:"car_model_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
}

func FromCarModelModels(rows []model.CarModelModel) []CarModelResponse {
	out := make([]CarModelResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, CarModelResponse{
			CarModelID: m.CarModelID,
			Code:       m.CarModelCode,
			Name:       m.CarModelName,
			Brand:      m.CarModelBrand,
		})
	}
	return out
}
