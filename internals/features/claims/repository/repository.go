// Package repository is claim storage. Services depend on Repository; the
// GORM implementation backs production and MemoryRepository backs tests.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/scope"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateClaimNo = errors.New("duplicate claim number")
	ErrOrphanLog        = errors.New("claim log references a missing claim")
	ErrUnknownReference = errors.New("referenced branch or user does not exist")
)

// Page bounds a list query. Limit <= 0 returns every row.
type Page struct {
	Limit  int
	Offset int
}

type Repository interface {
	// Transaction runs fn against a repository bound to one transaction.
	// fn returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// LastClaimNo is the greatest claim_no with prefix, soft-deleted rows
	// included; "" when none exists.
	LastClaimNo(ctx context.Context, prefix string) (string, error)
	CreateClaim(ctx context.Context, c *model.ClaimModel) error
	// FindClaim returns an active claim with Branch and Creator loaded.
	FindClaim(ctx context.Context, id uuid.UUID) (*model.ClaimModel, error)
	// UpdateClaimIfStatus writes cols, taking values from next, only while
	// the stored row is active and still in expected. Columns not named keep
	// their stored value. false means nothing matched.
	UpdateClaimIfStatus(ctx context.Context, next *model.ClaimModel, expected model.ClaimStatus, cols []string) (bool, error)
	ListClaims(ctx context.Context, where scope.Clause, page Page) ([]model.ClaimModel, int64, error)
	CountByStatus(ctx context.Context, where scope.Clause) (map[model.ClaimStatus]int64, error)

	AppendLog(ctx context.Context, log *model.ClaimLogModel) error
	ListLogs(ctx context.Context, claimID uuid.UUID) ([]model.ClaimLogModel, error)

	CreateFile(ctx context.Context, f *model.ClaimFileModel) error
	FindFile(ctx context.Context, claimID, fileID uuid.UUID) (*model.ClaimFileModel, error)
	ListFiles(ctx context.Context, claimID uuid.UUID) ([]model.ClaimFileModel, error)
	SoftDeleteFile(ctx context.Context, fileID uuid.UUID, at time.Time) error
	// ListPurgeableFiles returns soft-deleted files removed before cutoff
	// whose objects have not been purged yet.
	ListPurgeableFiles(ctx context.Context, cutoff time.Time, limit int) ([]model.ClaimFileModel, error)
	MarkFilePurged(ctx context.Context, fileID uuid.UUID, at time.Time) error
}

// Column sets per mutation. Each write touches only what its action owns.
var (
	decisionColumns = []string{"claim_status", "claim_approval_note", "claim_update_by", "claim_update_date"}
	approvalColumns = []string{"claim_approved_date", "claim_approved_by"}

	DeleteColumns = []string{"claim_is_active", "claim_update_by", "claim_update_date"}
)

// DecisionColumns: approve and reject also stamp approved_date/by,
// request-info does not.
func DecisionColumns(stampApproval bool) []string {
	cols := append([]string(nil), decisionColumns...)
	if stampApproval {
		cols = append(cols, approvalColumns...)
	}
	return cols
}

// EditColumns is what an edit writes: the patched columns, the status
// (moved on submit) and the update stamp.
func EditColumns(changed []string) []string {
	cols := append([]string(nil), changed...)
	return append(cols, "claim_status", "claim_update_by", "claim_update_date")
}

// pickColumns narrows claimColumns(c) to cols. Unknown or immutable names
// are an error.
func pickColumns(c *model.ClaimModel, cols []string) (map[string]any, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("claim update: no columns")
	}
	all := claimColumns(c)
	out := make(map[string]any, len(cols))
	for _, col := range cols {
		v, ok := all[col]
		if !ok {
			return nil, fmt.Errorf("claim update: column %q is not writable", col)
		}
		out[col] = v
	}
	return out, nil
}

// claimColumns are the columns UpdateClaimIfStatus may write. claim_no,
// claim_create_by and claim_create_date never change after insert.
func claimColumns(c *model.ClaimModel) map[string]any {
	return map[string]any{
		"claim_customer_name":     c.ClaimCustomerName,
		"claim_car_model":         c.ClaimCarModel,
		"claim_car_register":      c.ClaimCarRegister,
		"claim_vin_no":            c.ClaimVinNo,
		"claim_project_type":      c.ClaimProjectType,
		"claim_inventory_item_id": c.ClaimInventoryItemID,
		"claim_detail":            c.ClaimDetail,
		"claim_amount":            c.ClaimAmount,
		"claim_is_check_mileage":  c.ClaimIsCheckMileage,
		"claim_mileage":           c.ClaimMileage,
		"claim_last_mileage":      c.ClaimLastMileage,
		"claim_date":              c.ClaimDate,
		"claim_status":            c.ClaimStatus,
		"claim_approval_note":     c.ClaimApprovalNote,
		"claim_approved_date":     c.ClaimApprovedDate,
		"claim_approved_by":       c.ClaimApprovedBy,
		"claim_branch_id":         c.ClaimBranchID,
		"claim_update_by":         c.ClaimUpdateBy,
		"claim_update_date":       c.ClaimUpdateDate,
		"claim_is_active":         c.ClaimIsActive,
	}
}

// copyColumn mirrors claimColumns for in-memory rows.
var copyColumn = map[string]func(dst, src *model.ClaimModel){
	"claim_customer_name":     func(d, s *model.ClaimModel) { d.ClaimCustomerName = s.ClaimCustomerName },
	"claim_car_model":         func(d, s *model.ClaimModel) { d.ClaimCarModel = s.ClaimCarModel },
	"claim_car_register":      func(d, s *model.ClaimModel) { d.ClaimCarRegister = s.ClaimCarRegister },
	"claim_vin_no":            func(d, s *model.ClaimModel) { d.ClaimVinNo = s.ClaimVinNo },
	"claim_project_type":      func(d, s *model.ClaimModel) { d.ClaimProjectType = s.ClaimProjectType },
	"claim_inventory_item_id": func(d, s *model.ClaimModel) { d.ClaimInventoryItemID = s.ClaimInventoryItemID },
	"claim_detail":            func(d, s *model.ClaimModel) { d.ClaimDetail = s.ClaimDetail },
	"claim_amount":            func(d, s *model.ClaimModel) { d.ClaimAmount = s.ClaimAmount },
	"claim_is_check_mileage":  func(d, s *model.ClaimModel) { d.ClaimIsCheckMileage = s.ClaimIsCheckMileage },
	"claim_mileage":           func(d, s *model.ClaimModel) { d.ClaimMileage = s.ClaimMileage },
	"claim_last_mileage":      func(d, s *model.ClaimModel) { d.ClaimLastMileage = s.ClaimLastMileage },
	"claim_date":              func(d, s *model.ClaimModel) { d.ClaimDate = s.ClaimDate },
	"claim_status":            func(d, s *model.ClaimModel) { d.ClaimStatus = s.ClaimStatus },
	"claim_approval_note":     func(d, s *model.ClaimModel) { d.ClaimApprovalNote = s.ClaimApprovalNote },
	"claim_approved_date":     func(d, s *model.ClaimModel) { d.ClaimApprovedDate = s.ClaimApprovedDate },
	"claim_approved_by":       func(d, s *model.ClaimModel) { d.ClaimApprovedBy = s.ClaimApprovedBy },
	"claim_branch_id":         func(d, s *model.ClaimModel) { d.ClaimBranchID = s.ClaimBranchID },
	"claim_update_by":         func(d, s *model.ClaimModel) { d.ClaimUpdateBy = s.ClaimUpdateBy },
	"claim_update_date":       func(d, s *model.ClaimModel) { d.ClaimUpdateDate = s.ClaimUpdateDate },
	"claim_is_active":         func(d, s *model.ClaimModel) { d.ClaimIsActive = s.ClaimIsActive },
}
