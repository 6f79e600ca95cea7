package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimcenter_backend/internals/features/masters/mileages/model"
)

func TestBuildMileageOptionsAppendsOther(t *testing.T) {
	opts := BuildMileageOptions([]model.MileageModel{
		{MileageValue: 5000, MileageLabel: "5,000 km"},
		{MileageValue: 20000, MileageLabel: "20,000 km"},
	})
	assert.Equal(t, []MileageOption{
		{Value: 5000, Label: "5,000 km"},
		{Value: 20000, Label: "20,000 km"},
		{Value: -1, Label: "Other"},
	}, opts)

	assert.Equal(t, []MileageOption{{Value: -1, Label: "Other"}}, BuildMileageOptions(nil))
}
