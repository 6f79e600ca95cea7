package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/model"
	branchModel "claimcenter_backend/internals/features/masters/branches/model"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

func seedMixed(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, f.staff1, somchai(i%2 == 0))
		require.NoError(t, err)
	}
	req := somchai(true)
	req.CustomerName = "Malee"
	req.CarRegister = "ZZ9999"
	_, err := f.svc.Create(ctx, f.staff2, req)
	require.NoError(t, err)
}

func TestGetForbiddenAcrossBranches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.svc.Create(ctx, f.staff1, somchai(false))
	require.NoError(t, err)

	_, err = f.query.Get(ctx, f.staff2, c.ClaimID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	d, err := f.query.Get(ctx, f.staff1, c.ClaimID)
	require.NoError(t, err)
	assert.Equal(t, c.ClaimNo, d.Claim.ClaimNo)
	assert.Len(t, d.Logs, 1)

	_, err = f.query.Get(ctx, identity.Context{}, c.ClaimID)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestListScopesByIdentity(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)
	ctx := context.Background()

	page, err := f.query.List(ctx, f.staff1, dto.ClaimListQuery{BranchID: f.b2.String()}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total, "branch filter ignored for service center")
	for _, c := range page.Items {
		assert.Equal(t, f.b1, c.ClaimBranchID)
	}

	page, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, dto.DefaultPageSize, page.PageSize)

	page, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{BranchID: f.b2.String()}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{Search: "malee"}, 1, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "ZZ9999", page.Items[0].ClaimCarRegister)

	page, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{Status: "1"}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestListPagingAndBounds(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)
	ctx := context.Background()

	page, err := f.query.List(ctx, f.admin, dto.ClaimListQuery{}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Len(t, page.Items, 1)

	page, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{}, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageSize, page.PageSize)

	_, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{Status: "9"}, 1, 10)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestListDateRangeIncludesEndDay(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)
	ctx := context.Background()

	day := testNow.Format("2006-01-02")
	page, err := f.query.List(ctx, f.admin, dto.ClaimListQuery{StartDate: day, EndDate: day}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)

	before := testNow.AddDate(0, 0, -1).Format("2006-01-02")
	page, err = f.query.List(ctx, f.admin, dto.ClaimListQuery{EndDate: before}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestListServiceCenterWithoutBranchSeesNothing(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)

	orphan := identity.New(f.staff1.UserID, "SERVICE_CENTER", nil)
	page, err := f.query.List(context.Background(), orphan, dto.ClaimListQuery{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	seedMixed(t, f)
	ctx := context.Background()

	all, err := f.query.Stats(ctx, f.admin, dto.ClaimListQuery{Status: "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total, "status filter does not apply to stats")
	assert.Equal(t, int64(1), all.Draft)
	assert.Equal(t, int64(3), all.Pending)

	own, err := f.query.Stats(ctx, f.staff2, dto.ClaimListQuery{})
	require.NoError(t, err)
	assert.Equal(t, dto.ClaimStatsResponse{Total: 1, Pending: 1}, *own)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	f.repo.PutBranch(branchModel.BranchModel{BranchID: f.b1, BranchName: "Bangkok HQ"})
	seedMixed(t, f)

	var buf bytes.Buffer
	n, err := f.query.ExportCSV(context.Background(), f.staff1, dto.ClaimListQuery{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Bangkok HQ", records[1][2])
	assert.Equal(t, "2500.00", records[1][6])
	assert.Equal(t, testNow.In(time.UTC).Format("2006-01-02"), records[1][1])
	assert.Contains(t, []string{model.ClaimStatusDraft.String(), model.ClaimStatusPending.String()}, records[1][7])
}
