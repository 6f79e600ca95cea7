package dto

import (
	"strings"
	"unicode/utf8"

	"claimcenter_backend/internals/features/masters/vehicles/model"
)

const (
	MinLookupChars   = 4
	MaxLookupResults = 10
)

// LookupQuery trims q; ok is false when it is too short to search.
// Length counts characters, not bytes, so Thai plates work.
func LookupQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, utf8.RuneCountInString(q) >= MinLookupChars
}

type VehicleResponse struct {
	InventoryItemID int    `json:"inventory_item_id"`
	VinNo           string `json:"vin_no"`
	RegisterNo      string `json:"register_no"`
	ProjectType     string `json:"project_type"`
	Model           string `json:"model"`
	CustomerName    string `json:"customer_name"`
}

func FromVehicleModels(rows []model.VehicleModel) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(rows))
	for _, v := range rows {
		out = append(out, VehicleResponse{
			InventoryItemID: v.VehicleInventoryItemID,
			VinNo:           v.VehicleVinNo,
			RegisterNo:      v.VehicleRegisterNo,
			ProjectType:     v.VehicleProjectType,
			Model:           v.VehicleModelName,
			CustomerName:    v.VehicleCustomerName,
		})
	}
	return out
}
