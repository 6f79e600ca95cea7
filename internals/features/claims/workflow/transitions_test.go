package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcenter_backend/internals/constants"
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

func TestTargetTable(t *testing.T) {
	cases := []struct {
		action Action
		from   model.ClaimStatus
		want   model.ClaimStatus
		ok     bool
	}{
		{ActionSubmit, model.ClaimStatusDraft, model.ClaimStatusPending, true},
		{ActionSubmit, model.ClaimStatusNeedInfo, model.ClaimStatusPending, true},
		{ActionSubmit, model.ClaimStatusPending, model.ClaimStatusPending, false},
		{ActionSubmit, model.ClaimStatusApproved, model.ClaimStatusApproved, false},
		{ActionApprove, model.ClaimStatusPending, model.ClaimStatusApproved, true},
		{ActionApprove, model.ClaimStatusDraft, model.ClaimStatusDraft, false},
		{ActionApprove, model.ClaimStatusApproved, model.ClaimStatusApproved, false},
		{ActionReject, model.ClaimStatusPending, model.ClaimStatusRejected, true},
		{ActionReject, model.ClaimStatusNeedInfo, model.ClaimStatusNeedInfo, false},
		{ActionRequestInfo, model.ClaimStatusPending, model.ClaimStatusNeedInfo, true},
		{ActionRequestInfo, model.ClaimStatusRejected, model.ClaimStatusRejected, false},
		{ActionUpdate, model.ClaimStatusApproved, model.ClaimStatusApproved, true},
	}
	for _, tc := range cases {
		got, err := Target(tc.action, tc.from)
		assert.Equal(t, tc.want, got, "%s from %s", tc.action, tc.from)
		if tc.ok {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, apperror.ErrConflict, "%s from %s", tc.action, tc.from)
		}
	}
}

func TestTerminalStatusesHaveNoOutgoingTransition(t *testing.T) {
	for _, from := range []model.ClaimStatus{model.ClaimStatusApproved, model.ClaimStatusRejected} {
		for _, a := range []Action{ActionSubmit, ActionApprove, ActionReject, ActionRequestInfo} {
			_, err := Target(a, from)
			assert.Error(t, err)
		}
	}
}

func TestDecisionNote(t *testing.T) {
	blank := "   "
	note := "  missing invoice "

	n, err := DecisionNote(ActionApprove, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultApprovalNote, n)

	n, err = DecisionNote(ActionApprove, &note)
	require.NoError(t, err)
	assert.Equal(t, "missing invoice", n)

	_, err = DecisionNote(ActionReject, &blank)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = DecisionNote(ActionRequestInfo, nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	n, err = DecisionNote(ActionRequestInfo, &note)
	require.NoError(t, err)
	assert.Equal(t, "missing invoice", n)
}

func TestSubmitDescription(t *testing.T) {
	assert.Equal(t, DescSubmitted, SubmitDescription(model.ClaimStatusDraft))
	assert.Equal(t, DescResubmitted, SubmitDescription(model.ClaimStatusNeedInfo))
	assert.Equal(t, model.ClaimStatusPending, InitialStatus(true))
	assert.Equal(t, model.ClaimStatusDraft, InitialStatus(false))
}

func newAdmin() identity.Context {
	return identity.New(uuid.New(), constants.RoleAdmin, nil)
}

func newStaff(branch uuid.UUID) identity.Context {
	return identity.New(uuid.New(), constants.RoleServiceCenter, &branch)
}

func claimOf(owner identity.Context, branch uuid.UUID, status model.ClaimStatus) *model.ClaimModel {
	return &model.ClaimModel{
		ClaimID:       uuid.New(),
		ClaimBranchID: branch,
		ClaimCreateBy: owner.UserID,
		ClaimStatus:   status,
		ClaimIsActive: true,
	}
}

func TestCheckRole(t *testing.T) {
	staff := newStaff(uuid.New())

	assert.ErrorIs(t, CheckRole(ActionApprove, staff), apperror.ErrForbidden)
	assert.ErrorIs(t, CheckRole(ActionReject, staff), apperror.ErrForbidden)
	assert.ErrorIs(t, CheckRole(ActionRequestInfo, staff), apperror.ErrForbidden)
	assert.NoError(t, CheckRole(ActionApprove, newAdmin()))
	assert.NoError(t, CheckRole(ActionUpdate, staff))
	assert.ErrorIs(t, CheckRole(ActionApprove, identity.Context{}), apperror.ErrUnauthenticated)
}

func TestCheckCreate(t *testing.T) {
	assert.NoError(t, CheckCreate(newStaff(uuid.New())))
	assert.NoError(t, CheckCreate(newAdmin()))
	noBranch := identity.New(uuid.New(), constants.RoleServiceCenter, nil)
	assert.ErrorIs(t, CheckCreate(noBranch), apperror.ErrValidation)
}

func TestCheckView(t *testing.T) {
	branch := uuid.New()
	owner := newStaff(branch)
	c := claimOf(owner, branch, model.ClaimStatusPending)

	assert.NoError(t, CheckView(owner, c))
	assert.NoError(t, CheckView(newStaff(branch), c), "same branch, other user")
	assert.NoError(t, CheckView(newAdmin(), c))
	assert.ErrorIs(t, CheckView(newStaff(uuid.New()), c), apperror.ErrForbidden)
}

func TestCheckEdit(t *testing.T) {
	branch := uuid.New()
	owner := newStaff(branch)

	draft := claimOf(owner, branch, model.ClaimStatusDraft)
	assert.NoError(t, CheckEdit(owner, draft, false))
	assert.NoError(t, CheckEdit(owner, draft, true))
	assert.ErrorIs(t, CheckEdit(newStaff(branch), draft, false), apperror.ErrForbidden)

	pending := claimOf(owner, branch, model.ClaimStatusPending)
	assert.ErrorIs(t, CheckEdit(owner, pending, false), apperror.ErrForbidden)

	approved := claimOf(owner, branch, model.ClaimStatusApproved)
	assert.NoError(t, CheckEdit(newAdmin(), approved, false), "admin edits in any status")
	assert.ErrorIs(t, CheckEdit(newAdmin(), approved, true), apperror.ErrConflict)

	needInfo := claimOf(owner, branch, model.ClaimStatusNeedInfo)
	assert.NoError(t, CheckEdit(owner, needInfo, true))
}

func TestCheckDelete(t *testing.T) {
	branch := uuid.New()
	owner := newStaff(branch)

	assert.NoError(t, CheckDelete(owner, claimOf(owner, branch, model.ClaimStatusDraft)))
	assert.ErrorIs(t, CheckDelete(owner, claimOf(owner, branch, model.ClaimStatusPending)), apperror.ErrForbidden)
	assert.ErrorIs(t, CheckDelete(newStaff(branch), claimOf(owner, branch, model.ClaimStatusDraft)), apperror.ErrForbidden)
	assert.NoError(t, CheckDelete(newAdmin(), claimOf(owner, branch, model.ClaimStatusApproved)))
}

func TestCheckAttach(t *testing.T) {
	branch := uuid.New()
	owner := newStaff(branch)

	assert.NoError(t, CheckAttach(owner, claimOf(owner, branch, model.ClaimStatusPending)))
	assert.ErrorIs(t, CheckAttach(owner, claimOf(owner, branch, model.ClaimStatusRejected)), apperror.ErrConflict)
	assert.NoError(t, CheckAttach(newAdmin(), claimOf(owner, branch, model.ClaimStatusRejected)))
	assert.ErrorIs(t, CheckAttach(newStaff(uuid.New()), claimOf(owner, branch, model.ClaimStatusDraft)), apperror.ErrForbidden)
}
