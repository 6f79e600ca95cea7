package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcenter_backend/internals/constants"
	fileDTO "claimcenter_backend/internals/features/claims/claim_files/dto"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
	"claimcenter_backend/internals/helpers/storage"
)

var testNow = time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

type fileFixture struct {
	repo   *repository.MemoryRepository
	store  *storage.MemoryStore
	svc    *ClaimFileService
	admin  identity.Context
	staff  identity.Context
	other  identity.Context
	claim  *model.ClaimModel
	branch uuid.UUID
}

func newFileFixture(t *testing.T, status model.ClaimStatus) *fileFixture {
	t.Helper()
	repo := repository.NewMemoryRepository()
	store := storage.NewMemoryStore()
	branch, otherBranch := uuid.New(), uuid.New()
	staff := identity.New(uuid.New(), constants.RoleServiceCenter, &branch)

	c := &model.ClaimModel{
		ClaimID:           uuid.New(),
		ClaimNo:           "CLM-2026-0001",
		ClaimCustomerName: "Somchai",
		ClaimBranchID:     branch,
		ClaimStatus:       status,
		ClaimCreateBy:     staff.UserID,
		ClaimDate:         testNow,
		ClaimCreateDate:   testNow,
		ClaimIsActive:     true,
	}
	require.NoError(t, repo.CreateClaim(context.Background(), c))

	svc := NewClaimFileService(repo, store)
	svc.Now = func() time.Time { return testNow }
	return &fileFixture{
		repo:   repo,
		store:  store,
		svc:    svc,
		admin:  identity.New(uuid.New(), constants.RoleAdmin, nil),
		staff:  staff,
		other:  identity.New(uuid.New(), constants.RoleServiceCenter, &otherBranch),
		claim:  c,
		branch: branch,
	}
}

func upload(name, contentType, body string) fileDTO.EvidenceUpload {
	return fileDTO.EvidenceUpload{
		Filename:    name,
		Size:        int64(len(body)),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestUploadStoresObjectsAndRows(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	ctx := context.Background()

	rows, err := f.svc.Upload(ctx, f.staff, f.claim.ClaimID, []fileDTO.EvidenceUpload{
		upload("bumper.JPG", "application/octet-stream", "jpegbytes"),
		upload("invoice.pdf", "", "%PDF-1.7"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "image/jpeg", rows[0].ClaimFileType)
	assert.Equal(t, "application/pdf", rows[1].ClaimFileType)
	assert.True(t, strings.HasPrefix(rows[0].ClaimFileObjectKey, "evidence/202605/bumper_"))
	assert.Equal(t, "https://files.local/"+rows[0].ClaimFileObjectKey, rows[0].ClaimFileURL)

	body, ct, ok := f.store.Object(rows[1].ClaimFileObjectKey)
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.7", string(body))
	assert.Equal(t, "application/pdf", ct)

	listed, err := f.svc.List(ctx, f.staff, f.claim.ClaimID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestUploadValidation(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, f.staff, f.claim.ClaimID, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	six := make([]fileDTO.EvidenceUpload, 6)
	for i := range six {
		six[i] = upload("a.png", "image/png", "x")
	}
	_, err = f.svc.Upload(ctx, f.staff, f.claim.ClaimID, six)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	big := upload("scan.pdf", "application/pdf", "x")
	big.Size = constants.MaxEvidenceFileSize + 1
	_, err = f.svc.Upload(ctx, f.staff, f.claim.ClaimID, []fileDTO.EvidenceUpload{big})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.Upload(ctx, f.staff, f.claim.ClaimID, []fileDTO.EvidenceUpload{upload("run.exe", "application/x-msdownload", "MZ")})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields[fileDTO.FormField][0], "run.exe")

	assert.Zero(t, f.store.Len())
}

func TestUploadValidationBeforeLookup(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	_, err := f.svc.Upload(context.Background(), f.staff, uuid.New(), nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUploadAccess(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	ctx := context.Background()
	one := []fileDTO.EvidenceUpload{upload("a.png", "image/png", "png")}

	_, err := f.svc.Upload(ctx, identity.Context{}, f.claim.ClaimID, one)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = f.svc.Upload(ctx, f.other, f.claim.ClaimID, one)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.Upload(ctx, f.staff, uuid.New(), one)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.List(ctx, f.other, f.claim.ClaimID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUploadOnDecidedClaim(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusApproved)
	ctx := context.Background()
	one := []fileDTO.EvidenceUpload{upload("a.png", "image/png", "png")}

	_, err := f.svc.Upload(ctx, f.staff, f.claim.ClaimID, one)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	rows, err := f.svc.Upload(ctx, f.admin, f.claim.ClaimID, one)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUploadStoreFailureLeavesNothing(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	f.store.FailPut = errors.New("bucket unavailable")

	_, err := f.svc.Upload(context.Background(), f.staff, f.claim.ClaimID,
		[]fileDTO.EvidenceUpload{upload("a.png", "image/png", "png")})
	assert.ErrorIs(t, err, apperror.ErrDependency)

	files, err := f.repo.ListFiles(context.Background(), f.claim.ClaimID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDeleteFileIsSoft(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	ctx := context.Background()

	rows, err := f.svc.Upload(ctx, f.staff, f.claim.ClaimID, []fileDTO.EvidenceUpload{upload("a.png", "image/png", "png")})
	require.NoError(t, err)
	fileID := rows[0].ClaimFileID

	assert.ErrorIs(t, f.svc.Delete(ctx, f.other, f.claim.ClaimID, fileID), apperror.ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, f.staff, f.claim.ClaimID, uuid.New()), apperror.ErrNotFound)

	require.NoError(t, f.svc.Delete(ctx, f.staff, f.claim.ClaimID, fileID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.staff, f.claim.ClaimID, fileID), apperror.ErrNotFound)

	listed, err := f.svc.List(ctx, f.staff, f.claim.ClaimID)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 1, f.store.Len(), "object stays until the reaper runs")
}

func TestReaperPurgesAfterRetention(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	ctx := context.Background()

	rows, err := f.svc.Upload(ctx, f.staff, f.claim.ClaimID, []fileDTO.EvidenceUpload{
		upload("a.png", "image/png", "png"),
		upload("b.png", "image/png", "png"),
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, f.staff, f.claim.ClaimID, rows[0].ClaimFileID))

	reaper := NewEvidenceReaper(f.repo, f.store, 24*time.Hour)

	reaper.Now = func() time.Time { return testNow.Add(time.Hour) }
	n, err := reaper.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "still inside retention")

	reaper.Now = func() time.Time { return testNow.Add(25 * time.Hour) }
	n, err = reaper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, _, ok := f.store.Object(rows[0].ClaimFileObjectKey)
	assert.False(t, ok)
	_, _, ok = f.store.Object(rows[1].ClaimFileObjectKey)
	assert.True(t, ok)

	n, err = reaper.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "purged rows are not picked up again")
}

func TestReaperRetriesFailedDeletes(t *testing.T) {
	f := newFileFixture(t, model.ClaimStatusDraft)
	ctx := context.Background()

	rows, err := f.svc.Upload(ctx, f.staff, f.claim.ClaimID, []fileDTO.EvidenceUpload{upload("a.png", "image/png", "png")})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, f.staff, f.claim.ClaimID, rows[0].ClaimFileID))

	reaper := NewEvidenceReaper(f.repo, f.store, time.Hour)
	reaper.Now = func() time.Time { return testNow.Add(2 * time.Hour) }

	f.store.FailDelete = errors.New("timeout")
	n, err := reaper.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.store.FailDelete = nil
	n, err = reaper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
