package dto

import "claimcenter_backend/internals/features/masters/mileages/model"

// OtherMileageValue marks the free-entry option at the end of the list.
const (
	OtherMileageValue = -1
	OtherMileageLabel = "Other"
)

type MileageOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// BuildMileageOptions keeps the row order and always appends "Other".
func BuildMileageOptions(rows []model.MileageModel) []MileageOption {
	out := make([]MileageOption, 0, len(rows)+1)
	for _, m := range rows {
		out = append(out, MileageOption{Value: m.MileageValue, Label: m.MileageLabel})
	}
	return append(out, MileageOption{Value: OtherMileageValue, Label: OtherMileageLabel})
}
