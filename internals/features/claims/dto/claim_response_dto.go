package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"claimcenter_backend/internals/features/claims/model"
)

type ClaimResponse struct {
	ClaimID         uuid.UUID         `json:"claim_id"`
	ClaimNo         string            `json:"claim_no"`
	CustomerName    string            `json:"customer_name"`
	CarModel        string            `json:"car_model"`
	CarRegister     string            `json:"car_register"`
	VinNo           *string           `json:"vin_no"`
	ProjectType     *string           `json:"project_type"`
	InventoryItemID *string           `json:"inventory_item_id"`
	ClaimDetail     *string           `json:"claim_detail"`
	Amount          decimal.Decimal   `json:"amount"`
	IsCheckMileage  bool              `json:"is_check_mileage"`
	Mileage         int               `json:"mileage"`
	LastMileage     int               `json:"last_mileage"`
	ClaimDate       time.Time         `json:"claim_date"`
	Status          model.ClaimStatus `json:"status"`
	StatusLabel     string            `json:"status_label"`
	ApprovalNote    *string           `json:"approval_note"`
	ApprovedDate    *time.Time        `json:"approved_date"`
	ApprovedBy      *uuid.UUID        `json:"approved_by"`
	BranchID        uuid.UUID         `json:"branch_id"`
	BranchName      string            `json:"branch_name,omitempty"`
	CreateBy        uuid.UUID         `json:"create_by"`
	CreatorName     string            `json:"creator_name,omitempty"`
	CreateDate      time.Time         `json:"create_date"`
	UpdateBy        *uuid.UUID        `json:"update_by"`
	UpdateDate      *time.Time        `json:"update_date"`
}

func FromClaimModel(m *model.ClaimModel) ClaimResponse {
	out := ClaimResponse{
		ClaimID:         m.ClaimID,
		ClaimNo:         m.ClaimNo,
		CustomerName:    m.ClaimCustomerName,
		CarModel:        m.ClaimCarModel,
		CarRegister:     m.ClaimCarRegister,
		VinNo:           m.ClaimVinNo,
		ProjectType:     m.ClaimProjectType,
		InventoryItemID: m.ClaimInventoryItemID,
		ClaimDetail:     m.ClaimDetail,
		Amount:          m.ClaimAmount,
		IsCheckMileage:  m.ClaimIsCheckMileage,
		Mileage:         m.ClaimMileage,
		LastMileage:     m.ClaimLastMileage,
		ClaimDate:       m.ClaimDate,
		Status:          m.ClaimStatus,
		StatusLabel:     m.ClaimStatus.String(),
		ApprovalNote:    m.ClaimApprovalNote,
		ApprovedDate:    m.ClaimApprovedDate,
		ApprovedBy:      m.ClaimApprovedBy,
		BranchID:        m.ClaimBranchID,
		CreateBy:        m.ClaimCreateBy,
		CreateDate:      m.ClaimCreateDate,
		UpdateBy:        m.ClaimUpdateBy,
		UpdateDate:      m.ClaimUpdateDate,
	}
	if m.Branch != nil {
		out.BranchName = m.Branch.BranchName
	}
	if m.Creator != nil {
		out.CreatorName = m.Creator.UserFullName
	}
	return out
}

func FromClaimModels(rows []model.ClaimModel) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromClaimModel(&rows[i]))
	}
	return out
}

type ClaimFileResponse struct {
	ClaimFileID uuid.UUID `json:"claim_file_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreateBy    uuid.UUID `json:"create_by"`
	CreateDate  time.Time `json:"create_date"`
}

func FromClaimFileModel(f *model.ClaimFileModel) ClaimFileResponse {
	return ClaimFileResponse{
		ClaimFileID: f.ClaimFileID,
		Name:        f.ClaimFileName,
		Type:        f.ClaimFileType,
		Size:        f.ClaimFileSize,
		URL:         f.ClaimFileURL,
		CreateBy:    f.ClaimFileCreateBy,
		CreateDate:  f.ClaimFileCreateDate,
	}
}

func FromClaimFileModels(rows []model.ClaimFileModel) []ClaimFileResponse {
	out := make([]ClaimFileResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromClaimFileModel(&rows[i]))
	}
	return out
}

type ClaimLogResponse struct {
	ClaimLogID  uuid.UUID          `json:"claim_log_id"`
	Action      model.ClaimAction  `json:"action"`
	Description *string            `json:"description"`
	OldStatus   *model.ClaimStatus `json:"old_status"`
	NewStatus   model.ClaimStatus  `json:"new_status"`
	ActionBy    uuid.UUID          `json:"action_by"`
	ActionDate  time.Time          `json:"action_date"`
	Meta        map[string]any     `json:"meta,omitempty"`
}

func FromClaimLogModels(rows []model.ClaimLogModel) []ClaimLogResponse {
	out := make([]ClaimLogResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, ClaimLogResponse{
			ClaimLogID:  l.ClaimLogID,
			Action:      l.ClaimLogAction,
			Description: l.ClaimLogDescription,
			OldStatus:   l.ClaimLogOldStatus,
			NewStatus:   l.ClaimLogNewStatus,
			ActionBy:    l.ClaimLogActionBy,
			ActionDate:  l.ClaimLogActionDate,
			Meta:        l.ClaimLogMeta,
		})
	}
	return out
}

// ClaimDetailResponse is GET /api/claims/:id.
type ClaimDetailResponse struct {
	ClaimResponse
	Files []ClaimFileResponse `json:"files"`
	Logs  []ClaimLogResponse  `json:"logs"`
}

// ClaimStatsResponse is the dashboard bucket.
type ClaimStatsResponse struct {
	Total    int64 `json:"total"`
	Draft    int64 `json:"draft"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	NeedInfo int64 `json:"need_info"`
}
