package dto

import (
	"github.com/google/uuid"

	"claimcenter_backend/internals/features/masters/branches/model"
)

type BranchResponse struct {
	BranchID   uuid.UUID `json:"branch_id"`
	BranchCode string    `json:"branch_code"`
	BranchName string    `json:"branch_name"`
}

func FromBranchModels(rows []model.BranchModel) []BranchResponse {
	out := make([]BranchResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, BranchResponse{BranchID: b.BranchID, BranchCode: b.BranchCode, BranchName: b.BranchName})
	}
	return out
}
