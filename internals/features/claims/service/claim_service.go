// file: internals/features/claims/service/claim_service.go
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/audit"
	"claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/numbering"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/features/claims/workflow"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/dbtime"
	"claimcenter_backend/internals/helpers/identity"
)

// DefaultCreateAttempts bounds the claim-number retry loop.
const DefaultCreateAttempts = 5

/* =========================
   ClaimService (mutations)
========================= */

type ClaimService struct {
	Repo  repository.Repository
	Audit *audit.Writer
	Now   func() time.Time
	Loc   *time.Location

	CreateAttempts int

	auditOnce sync.Once
}

func NewClaimService(repo repository.Repository) *ClaimService {
	return &ClaimService{
		Repo:           repo,
		Audit:          audit.NewWriter(),
		Now:            time.Now,
		Loc:            dbtime.AppLocation(),
		CreateAttempts: DefaultCreateAttempts,
	}
}

func (s *ClaimService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ClaimService) loc() *time.Location {
	if s.Loc != nil {
		return s.Loc
	}
	return time.UTC
}

func (s *ClaimService) writer() *audit.Writer {
	s.auditOnce.Do(func() {
		if s.Audit == nil {
			s.Audit = &audit.Writer{Now: s.now}
		}
	})
	return s.Audit
}

/* =========================
   Create
========================= */

func (s *ClaimService) Create(ctx context.Context, id identity.Context, req dto.CreateClaimRequest) (*model.ClaimModel, error) {
	if err := workflow.CheckCreate(id); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	branchID, err := createBranch(id, req.BranchID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	year := now.In(s.loc()).Year()
	status := workflow.InitialStatus(req.SubmitNow)

	attempts := s.CreateAttempts
	if attempts <= 0 {
		attempts = DefaultCreateAttempts
	}

	var created *model.ClaimModel
	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.Repo.Transaction(ctx, func(tx repository.Repository) error {
			last, err := tx.LastClaimNo(ctx, numbering.Prefix(year))
			if err != nil {
				return err
			}
			no, err := numbering.Next(year, last)
			if err != nil {
				return err
			}

			c := &model.ClaimModel{
				ClaimID:              uuid.New(),
				ClaimNo:              no,
				ClaimCustomerName:    req.CustomerName,
				ClaimCarModel:        req.CarModel,
				ClaimCarRegister:     req.CarRegister,
				ClaimVinNo:           req.VinNo,
				ClaimProjectType:     req.ProjectType,
				ClaimInventoryItemID: req.InventoryItemID,
				ClaimDetail:          req.ClaimDetail,
				ClaimAmount:          req.Amount.Decimal,
				ClaimIsCheckMileage:  req.IsCheckMileage,
				ClaimMileage:         req.Mileage,
				ClaimLastMileage:     req.LastMileage,
				ClaimDate:            now,
				ClaimStatus:          status,
				ClaimBranchID:        branchID,
				ClaimCreateBy:        id.UserID,
				ClaimCreateDate:      now,
				ClaimIsActive:        true,
			}
			if err := tx.CreateClaim(ctx, c); err != nil {
				return err
			}

			if _, err := s.writer().Append(ctx, tx, audit.Entry{
				ClaimID:     c.ClaimID,
				Action:      model.ClaimActionCreated,
				Description: workflow.DescCreated,
				NewStatus:   status,
				ActionBy:    id.UserID,
				Meta:        map[string]any{"claim_no": no},
			}); err != nil {
				return err
			}
			if req.SubmitNow {
				if _, err := s.writer().Append(ctx, tx, audit.Entry{
					ClaimID:     c.ClaimID,
					Action:      model.ClaimActionSubmitted,
					Description: workflow.DescSubmitted,
					OldStatus:   model.ClaimStatusDraft.Ptr(),
					NewStatus:   model.ClaimStatusPending,
					ActionBy:    id.UserID,
				}); err != nil {
					return err
				}
			}
			created = c
			return nil
		})
		if err == nil {
			log.Printf("[ClaimService] created %s by %s (status=%s)", created.ClaimNo, id.UserID, created.ClaimStatus)
			return created, nil
		}
		if !errors.Is(err, repository.ErrDuplicateClaimNo) {
			break
		}
		log.Printf("[ClaimService] claim number collision, attempt %d/%d", attempt, attempts)
	}
	return nil, storageErr(err)
}

// createBranch: SERVICE_CENTER always files into its own branch; ADMIN
// picks one in the body or falls back to its own.
func createBranch(id identity.Context, requested *uuid.UUID) (uuid.UUID, error) {
	if id.IsAdmin() {
		if requested != nil {
			return *requested, nil
		}
		if id.HasBranch() {
			return *id.BranchID, nil
		}
		return uuid.Nil, apperror.ValidationFields(map[string][]string{"branch_id": {"is required"}})
	}
	return *id.BranchID, nil
}

/* =========================
   Update
========================= */

func (s *ClaimService) Update(ctx context.Context, id identity.Context, claimID uuid.UUID, patch dto.PatchClaimRequest) (*model.ClaimModel, error) {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return nil, err
	}
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	cur, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return nil, storageErr(err)
	}
	if err := workflow.CheckEdit(id, cur, patch.SubmitNow); err != nil {
		return nil, err
	}

	now := s.now()
	from := cur.ClaimStatus
	next := cur.Clone()
	changed := patch.Apply(&next, id.IsAdmin())
	if patch.SubmitNow {
		to, err := workflow.Target(workflow.ActionSubmit, from)
		if err != nil {
			return nil, err
		}
		next.ClaimStatus = to
	}
	next.ClaimUpdateBy = &id.UserID
	next.ClaimUpdateDate = &now

	err = s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := casWrite(ctx, tx, &next, from, repository.EditColumns(changed)); err != nil {
			return err
		}
		entry := audit.Entry{
			ClaimID:     next.ClaimID,
			Action:      model.ClaimActionUpdated,
			Description: workflow.DescUpdated,
			OldStatus:   from.Ptr(),
			NewStatus:   next.ClaimStatus,
			ActionBy:    id.UserID,
		}
		if len(changed) > 0 {
			entry.Meta = map[string]any{"changed": changed}
		}
		if _, err := s.writer().Append(ctx, tx, entry); err != nil {
			return err
		}
		if patch.SubmitNow {
			_, err := s.writer().Append(ctx, tx, audit.Entry{
				ClaimID:     next.ClaimID,
				Action:      model.ClaimActionSubmitted,
				Description: workflow.SubmitDescription(from),
				OldStatus:   from.Ptr(),
				NewStatus:   next.ClaimStatus,
				ActionBy:    id.UserID,
			})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return s.reload(ctx, &next), nil
}

/* =========================
   Approve / Reject / RequestInfo
========================= */

func (s *ClaimService) Approve(ctx context.Context, id identity.Context, claimID uuid.UUID, note *string) (*model.ClaimModel, error) {
	return s.decide(ctx, id, claimID, workflow.ActionApprove, note)
}

func (s *ClaimService) Reject(ctx context.Context, id identity.Context, claimID uuid.UUID, note *string) (*model.ClaimModel, error) {
	return s.decide(ctx, id, claimID, workflow.ActionReject, note)
}

func (s *ClaimService) RequestInfo(ctx context.Context, id identity.Context, claimID uuid.UUID, note *string) (*model.ClaimModel, error) {
	return s.decide(ctx, id, claimID, workflow.ActionRequestInfo, note)
}

func (s *ClaimService) decide(ctx context.Context, id identity.Context, claimID uuid.UUID, action workflow.Action, note *string) (*model.ClaimModel, error) {
	if err := workflow.CheckRole(action, id); err != nil {
		return nil, err
	}
	text, err := workflow.DecisionNote(action, note)
	if err != nil {
		return nil, err
	}

	cur, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return nil, storageErr(err)
	}
	to, err := workflow.CheckDecision(action, cur)
	if err != nil {
		return nil, err
	}
	t, _ := workflow.Lookup(action)

	now := s.now()
	next := cur.Clone()
	next.ClaimStatus = to
	next.ClaimApprovalNote = &text
	next.ClaimUpdateBy = &id.UserID
	next.ClaimUpdateDate = &now
	stamp := action == workflow.ActionApprove || action == workflow.ActionReject
	if stamp {
		next.ClaimApprovedDate = &now
		next.ClaimApprovedBy = &id.UserID
	}

	err = s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := casWrite(ctx, tx, &next, cur.ClaimStatus, repository.DecisionColumns(stamp)); err != nil {
			return err
		}
		_, err := s.writer().Append(ctx, tx, audit.Entry{
			ClaimID:     next.ClaimID,
			Action:      t.Log,
			Description: text,
			OldStatus:   cur.ClaimStatus.Ptr(),
			NewStatus:   to,
			ActionBy:    id.UserID,
		})
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}
	log.Printf("[ClaimService] %s %s -> %s by %s", cur.ClaimNo, cur.ClaimStatus, to, id.UserID)
	return s.reload(ctx, &next), nil
}

/* =========================
   Delete (soft)
========================= */

func (s *ClaimService) Delete(ctx context.Context, id identity.Context, claimID uuid.UUID) error {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	cur, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return storageErr(err)
	}
	if err := workflow.CheckDelete(id, cur); err != nil {
		return err
	}

	now := s.now()
	next := cur.Clone()
	next.ClaimIsActive = false
	next.ClaimUpdateBy = &id.UserID
	next.ClaimUpdateDate = &now

	err = s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := casWrite(ctx, tx, &next, cur.ClaimStatus, repository.DeleteColumns); err != nil {
			return err
		}
		_, err := s.writer().Append(ctx, tx, audit.Entry{
			ClaimID:     next.ClaimID,
			Action:      model.ClaimActionDeleted,
			Description: workflow.DescDeleted,
			OldStatus:   cur.ClaimStatus.Ptr(),
			NewStatus:   cur.ClaimStatus,
			ActionBy:    id.UserID,
		})
		return err
	})
	if err != nil {
		return storageErr(err)
	}
	log.Printf("[ClaimService] deleted %s by %s", cur.ClaimNo, id.UserID)
	return nil
}

/* =========================
   helpers
========================= */

// casWrite is the conditional update of cols; losing the race is a Conflict.
func casWrite(ctx context.Context, tx repository.Repository, next *model.ClaimModel, expected model.ClaimStatus, cols []string) error {
	ok, err := tx.UpdateClaimIfStatus(ctx, next, expected, cols)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Conflict(workflow.ErrMsgStaleStatus)
	}
	return nil
}

// reload returns the stored row with relations; next is the fallback
// when the re-read fails after a committed write.
func (s *ClaimService) reload(ctx context.Context, next *model.ClaimModel) *model.ClaimModel {
	got, err := s.Repo.FindClaim(ctx, next.ClaimID)
	if err != nil {
		log.Printf("[ClaimService] reload %s: %v", next.ClaimID, err)
		return next
	}
	return got
}

// storageErr maps repository and numbering errors onto apperror kinds.
// Errors that already carry a kind pass through.
func storageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case apperror.KindOf(err) != apperror.KindUnknown:
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(workflow.ErrMsgNotFound)
	case errors.Is(err, repository.ErrDuplicateClaimNo):
		return apperror.Conflict("could not allocate a claim number; retry")
	case errors.Is(err, numbering.ErrSequenceExhausted):
		return apperror.Conflict(err.Error())
	case errors.Is(err, repository.ErrUnknownReference):
		return apperror.ValidationFields(map[string][]string{"branch_id": {"unknown branch"}})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperror.Dependency("request timed out", err)
	default:
		log.Printf("[ClaimService] storage error: %v", err)
		return apperror.Dependency("storage failure", err)
	}
}
