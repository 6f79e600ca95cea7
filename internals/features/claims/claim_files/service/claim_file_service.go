// file: internals/features/claims/claim_files/service/claim_file_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/constants"
	fileDTO "claimcenter_backend/internals/features/claims/claim_files/dto"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/features/claims/workflow"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
	"claimcenter_backend/internals/helpers/storage"
)

const ErrMsgFileNotFound = "file not found"

type ClaimFileService struct {
	Repo  repository.Repository
	Store storage.ObjectStore
	Now   func() time.Time
}

func NewClaimFileService(repo repository.Repository, store storage.ObjectStore) *ClaimFileService {
	return &ClaimFileService{Repo: repo, Store: store, Now: time.Now}
}

func (s *ClaimFileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type checkedUpload struct {
	up          fileDTO.EvidenceUpload
	contentType string
}

// validateUploads checks count, size and type before anything is read.
func validateUploads(ups []fileDTO.EvidenceUpload) ([]checkedUpload, error) {
	if len(ups) == 0 {
		return nil, apperror.ValidationFields(map[string][]string{fileDTO.FormField: {"at least one file is required"}})
	}
	if len(ups) > constants.MaxEvidenceFilesPerCall {
		return nil, apperror.ValidationFields(map[string][]string{
			fileDTO.FormField: {fmt.Sprintf("at most %d files per upload", constants.MaxEvidenceFilesPerCall)},
		})
	}

	fields := map[string][]string{}
	out := make([]checkedUpload, 0, len(ups))
	for _, up := range ups {
		name := up.Filename
		if name == "" {
			name = "(unnamed)"
		}
		if up.Size <= 0 {
			fields[fileDTO.FormField] = append(fields[fileDTO.FormField], name+": empty file")
			continue
		}
		if up.Size > constants.MaxEvidenceFileSize {
			fields[fileDTO.FormField] = append(fields[fileDTO.FormField], name+": exceeds 10MB")
			continue
		}
		ct, ok := constants.ResolveEvidenceType(up.Filename, up.ContentType)
		if !ok {
			fields[fileDTO.FormField] = append(fields[fileDTO.FormField], name+": file type not allowed")
			continue
		}
		out = append(out, checkedUpload{up: up, contentType: ct})
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationFields(fields)
	}
	return out, nil
}

/* =========================
   Upload
========================= */

// Upload stores every object first, then records all rows in one
// transaction. Any failure removes the objects already written.
func (s *ClaimFileService) Upload(ctx context.Context, id identity.Context, claimID uuid.UUID, ups []fileDTO.EvidenceUpload) ([]model.ClaimFileModel, error) {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return nil, err
	}
	checked, err := validateUploads(ups)
	if err != nil {
		return nil, err
	}

	claim, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return nil, fileErr(err, workflow.ErrMsgNotFound)
	}
	if err := workflow.CheckAttach(id, claim); err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]model.ClaimFileModel, 0, len(checked))
	for _, cu := range checked {
		key := storage.EvidenceKey(now, cu.up.Filename)
		if err := s.put(ctx, key, cu); err != nil {
			s.rollbackObjects(rows)
			return nil, apperror.Dependency("failed to store file "+cu.up.Filename, err)
		}
		rows = append(rows, model.ClaimFileModel{
			ClaimFileID:         uuid.New(),
			ClaimFileClaimID:    claim.ClaimID,
			ClaimFileName:       cu.up.Filename,
			ClaimFileType:       cu.contentType,
			ClaimFileSize:       cu.up.Size,
			ClaimFileURL:        s.Store.PublicURL(key),
			ClaimFileObjectKey:  key,
			ClaimFileIsActive:   true,
			ClaimFileCreateBy:   id.UserID,
			ClaimFileCreateDate: now,
		})
	}

	err = s.Repo.Transaction(ctx, func(tx repository.Repository) error {
		for i := range rows {
			if err := tx.CreateFile(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.rollbackObjects(rows)
		return nil, fileErr(err, workflow.ErrMsgNotFound)
	}

	log.Printf("[ClaimFileService] %d file(s) attached to %s by %s", len(rows), claim.ClaimNo, id.UserID)
	return rows, nil
}

func (s *ClaimFileService) put(ctx context.Context, key string, cu checkedUpload) error {
	if cu.up.Open == nil {
		return errors.New("no file content")
	}
	rc, err := cu.up.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return s.Store.Put(ctx, key, rc, cu.up.Size, cu.contentType)
}

// rollbackObjects runs on a detached context so a cancelled request
// still cleans up.
func (s *ClaimFileService) rollbackObjects(rows []model.ClaimFileModel) {
	if len(rows) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range rows {
		if err := s.Store.Delete(ctx, r.ClaimFileObjectKey); err != nil {
			log.Printf("[ClaimFileService] rollback delete %s: %v", r.ClaimFileObjectKey, err)
		}
	}
}

/* =========================
   List
========================= */

func (s *ClaimFileService) List(ctx context.Context, id identity.Context, claimID uuid.UUID) ([]model.ClaimFileModel, error) {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return nil, err
	}
	claim, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return nil, fileErr(err, workflow.ErrMsgNotFound)
	}
	if err := workflow.CheckView(id, claim); err != nil {
		return nil, err
	}
	files, err := s.Repo.ListFiles(ctx, claimID)
	if err != nil {
		return nil, fileErr(err, workflow.ErrMsgNotFound)
	}
	return files, nil
}

/* =========================
   Delete (soft; object reaped later)
========================= */

func (s *ClaimFileService) Delete(ctx context.Context, id identity.Context, claimID, fileID uuid.UUID) error {
	if err := workflow.ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	claim, err := s.Repo.FindClaim(ctx, claimID)
	if err != nil {
		return fileErr(err, workflow.ErrMsgNotFound)
	}
	if err := workflow.CheckAttach(id, claim); err != nil {
		return err
	}
	if _, err := s.Repo.FindFile(ctx, claimID, fileID); err != nil {
		return fileErr(err, ErrMsgFileNotFound)
	}
	if err := s.Repo.SoftDeleteFile(ctx, fileID, s.now()); err != nil {
		return fileErr(err, ErrMsgFileNotFound)
	}
	log.Printf("[ClaimFileService] file %s removed from %s by %s", fileID, claim.ClaimNo, id.UserID)
	return nil
}

func fileErr(err error, notFoundMsg string) error {
	switch {
	case apperror.KindOf(err) != apperror.KindUnknown:
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	default:
		log.Printf("[ClaimFileService] storage error: %v", err)
		return apperror.Dependency("storage failure", err)
	}
}
