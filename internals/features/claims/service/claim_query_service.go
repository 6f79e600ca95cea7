package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/features/claims/scope"
	"claimcenter_backend/internals/features/claims/workflow"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/dbtime"
	"claimcenter_backend/internals/helpers/identity"
)

type ClaimQueryService struct {
	Repo repository.Repository
	Loc  *time.Location
}

func NewClaimQueryService(repo repository.Repository) *ClaimQueryService {
	return &ClaimQueryService{Repo: repo, Loc: dbtime.AppLocation()}
}

type ClaimPage struct {
	Items    []model.ClaimModel
	Total    int64
	Page     int
	PageSize int
}

type ClaimDetail struct {
	Claim *model.ClaimModel
	Files []model.ClaimFileModel
	Logs  []model.ClaimLogModel
}

func (s *ClaimQueryService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.UTC
}

// Where builds the scoped predicate for q. Shared by list, stats and export.
func (s *ClaimQueryService) Where(id identity.Context, q dto.ClaimListQuery) (scope.Clause, error) {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return nil, err
	}
	f, err := q.ToFilter(s.loc())
	if err != nil {
		return nil, err
	}
	return scope.Build(id, f), nil
}

func (s *ClaimQueryService) List(ctx context.Context, id identity.Context, q dto.ClaimListQuery, page, pageSize int) (*ClaimPage, error) {
	where, err := s.Where(id, q)
	if err != nil {
		return nil, err
	}
	p := helper.NewPaging(page, pageSize, dto.DefaultPageSize, dto.MaxPageSize)

	rows, total, err := s.Repo.ListClaims(ctx, where, repository.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, storageErr(err)
	}
	return &ClaimPage{Items: rows, Total: total, Page: p.Page, PageSize: p.PerPage}, nil
}

// Get loads one active claim the caller may see, with files and logs
// newest first.
func (s *ClaimQueryService) Get(ctx context.Context, id identity.Context, claimID uuid.UUID) (*ClaimDetail, error) {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return nil, err
	}
	c, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return nil, storageErr(err)
	}
	if err := workflow.CheckView(id, c); err != nil {
		return nil, err
	}

	files, err := s.Repo.ListFiles(ctx, claimID)
	if err != nil {
		return nil, storageErr(err)
	}
	logs, err := s.Repo.ListLogs(ctx, claimID)
	if err != nil {
		return nil, storageErr(err)
	}
	return &ClaimDetail{Claim: c, Files: files, Logs: logs}, nil
}
