package service

import (
	"context"

	"claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/helpers/identity"
)

// Stats buckets the caller's visible claims by status. Status and search
// filters do not apply; branch and date range do.
func (s *ClaimQueryService) Stats(ctx context.Context, id identity.Context, q dto.ClaimListQuery) (*dto.ClaimStatsResponse, error) {
	q.Status = ""
	q.Search = ""
	where, err := s.Where(id, q)
	if err != nil {
		return nil, err
	}

	counts, err := s.Repo.CountByStatus(ctx, where)
	if err != nil {
		return nil, storageErr(err)
	}

	out := &dto.ClaimStatsResponse{
		Draft:    counts[model.ClaimStatusDraft],
		Pending:  counts[model.ClaimStatusPending],
		Approved: counts[model.ClaimStatusApproved],
		Rejected: counts[model.ClaimStatusRejected],
		NeedInfo: counts[model.ClaimStatusNeedInfo],
	}
	out.Total = out.Draft + out.Pending + out.Approved + out.Rejected + out.NeedInfo
	return out, nil
}
