package service

import (
	"context"
	"encoding/csv"
	"io"

	"claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/dbtime"
	"claimcenter_backend/internals/helpers/identity"
)

// MaxExportRows caps one CSV export.
const MaxExportRows = 10000

var exportHeader = []string{
	"ClaimNo", "ClaimDate", "Branch", "Customer", "CarModel",
	"CarRegister", "Amount", "Status", "ApprovedDate", "ApprovalNote",
}

// ExportCSV writes every claim matching q (no paging) as CSV.
func (s *ClaimQueryService) ExportCSV(ctx context.Context, id identity.Context, q dto.ClaimListQuery, w io.Writer) (int, error) {
	where, err := s.Where(id, q)
	if err != nil {
		return 0, err
	}
	rows, total, err := s.Repo.ListClaims(ctx, where, repository.Page{Limit: MaxExportRows})
	if err != nil {
		return 0, storageErr(err)
	}
	if total > MaxExportRows {
		return 0, apperror.Validation("too many claims to export; narrow the date range")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for i := range rows {
		if err := cw.Write(s.exportRow(&rows[i])); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}

func (s *ClaimQueryService) exportRow(c *model.ClaimModel) []string {
	branch := c.ClaimBranchID.String()
	if c.Branch != nil {
		branch = c.Branch.BranchName
	}
	approved, note := "", ""
	if c.ClaimApprovedDate != nil {
		approved = c.ClaimApprovedDate.In(s.loc()).Format(dbtime.DayLayout)
	}
	if c.ClaimApprovalNote != nil {
		note = *c.ClaimApprovalNote
	}
	return []string{
		c.ClaimNo,
		c.ClaimDate.In(s.loc()).Format(dbtime.DayLayout),
		branch,
		c.ClaimCustomerName,
		c.ClaimCarModel,
		c.ClaimCarRegister,
		c.ClaimAmount.StringFixed(2),
		c.ClaimStatus.String(),
		approved,
		note,
	}
}
