// file: internals/features/claims/model/claim_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	branchModel "claimcenter_backend/internals/features/masters/branches/model"
	userModel "claimcenter_backend/internals/features/users/user/model"
)

type ClaimModel struct {
	// PK + business key
	ClaimID uuid.UUID `gorm:"type:uuid;primaryKey;column:claim_id" json:"claim_id"`
	ClaimNo string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_claims_no;column:claim_no" json:"claim_no"`

	// Kendaraan & pelanggan
	ClaimCustomerName    string  `gorm:"type:varchar(200);not null;column:claim_customer_name" json:"claim_customer_name"`
	ClaimCarModel        string  `gorm:"type:varchar(100);not null;column:claim_car_model" json:"claim_car_model"`
	ClaimCarRegister     string  `gorm:"type:varchar(50);not null;column:claim_car_register" json:"claim_car_register"`
	ClaimVinNo           *string `gorm:"type:varchar(50);column:claim_vin_no" json:"claim_vin_no,omitempty"`
	ClaimProjectType     *string `gorm:"type:varchar(100);column:claim_project_type" json:"claim_project_type,omitempty"`
	ClaimInventoryItemID *string `gorm:"type:varchar(100);column:claim_inventory_item_id" json:"claim_inventory_item_id,omitempty"`
	ClaimDetail          *string `gorm:"type:text;column:claim_detail" json:"claim_detail,omitempty"`

	ClaimAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0;column:claim_amount" json:"claim_amount"`

	// Mileage (hanya bermakna jika is_check_mileage)
	ClaimIsCheckMileage bool `gorm:"not null;default:false;column:claim_is_check_mileage" json:"claim_is_check_mileage"`
	ClaimMileage        int  `gorm:"not null;default:0;column:claim_mileage" json:"claim_mileage"`
	ClaimLastMileage    int  `gorm:"not null;default:0;column:claim_last_mileage" json:"claim_last_mileage"`

	ClaimDate time.Time `gorm:"type:timestamptz;not null;index:idx_claims_date;column:claim_date" json:"claim_date"`

	// Workflow
	ClaimStatus       ClaimStatus `gorm:"type:smallint;not null;default:0;index:idx_claims_branch_status,priority:2;column:claim_status" json:"claim_status"`
	ClaimApprovalNote *string     `gorm:"type:text;column:claim_approval_note" json:"claim_approval_note,omitempty"`
	ClaimApprovedDate *time.Time  `gorm:"type:timestamptz;column:claim_approved_date" json:"claim_approved_date,omitempty"`
	ClaimApprovedBy   *uuid.UUID  `gorm:"type:uuid;column:claim_approved_by" json:"claim_approved_by,omitempty"`

	// Scope & audit columns
	ClaimBranchID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_claims_branch_status,priority:1;column:claim_branch_id" json:"claim_branch_id"`
	ClaimCreateBy   uuid.UUID  `gorm:"type:uuid;not null;column:claim_create_by" json:"claim_create_by"`
	ClaimCreateDate time.Time  `gorm:"type:timestamptz;not null;column:claim_create_date" json:"claim_create_date"`
	ClaimUpdateBy   *uuid.UUID `gorm:"type:uuid;column:claim_update_by" json:"claim_update_by,omitempty"`
	ClaimUpdateDate *time.Time `gorm:"type:timestamptz;column:claim_update_date" json:"claim_update_date,omitempty"`

	// Soft tombstone
	ClaimIsActive bool `gorm:"not null;default:true;column:claim_is_active" json:"claim_is_active"`

	Branch  *branchModel.BranchModel `gorm:"foreignKey:ClaimBranchID;references:BranchID" json:"branch,omitempty"`
	Creator *userModel.UserModel     `gorm:"foreignKey:ClaimCreateBy;references:UserID" json:"creator,omitempty"`
	Files   []ClaimFileModel         `gorm:"foreignKey:ClaimFileClaimID;references:ClaimID" json:"files,omitempty"`
	Logs    []ClaimLogModel          `gorm:"foreignKey:ClaimLogClaimID;references:ClaimID" json:"logs,omitempty"`
}

func (ClaimModel) TableName() string { return "claims" }

// Clone copies the scalar columns; relations are dropped.
func (m ClaimModel) Clone() ClaimModel {
	out := m
	out.Branch = nil
	out.Creator = nil
	out.Files = nil
	out.Logs = nil
	return out
}
