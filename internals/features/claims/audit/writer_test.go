package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcenter_backend/internals/features/claims/model"
)

type recordingStore struct {
	rows []*model.ClaimLogModel
	err  error
}

func (s *recordingStore) AppendLog(_ context.Context, l *model.ClaimLogModel) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, l)
	return nil
}

func TestAppendBuildsRow(t *testing.T) {
	fixed := time.Date(2026, 5, 2, 9, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	w := &Writer{Now: func() time.Time { return fixed }}
	store := &recordingStore{}
	claimID, actor := uuid.New(), uuid.New()

	row, err := w.Append(context.Background(), store, Entry{
		ClaimID:     claimID,
		Action:      model.ClaimActionSubmitted,
		Description: "submitted for approval",
		OldStatus:   model.ClaimStatusDraft.Ptr(),
		NewStatus:   model.ClaimStatusPending,
		ActionBy:    actor,
		Meta:        map[string]any{"claim_no": "CLM-2026-0001"},
	})
	require.NoError(t, err)
	require.Len(t, store.rows, 1)

	assert.Same(t, row, store.rows[0])
	assert.NotEqual(t, uuid.Nil, row.ClaimLogID)
	assert.Equal(t, claimID, row.ClaimLogClaimID)
	assert.Equal(t, model.ClaimStatusDraft, *row.ClaimLogOldStatus)
	assert.Equal(t, model.ClaimStatusPending, row.ClaimLogNewStatus)
	assert.Equal(t, "submitted for approval", *row.ClaimLogDescription)
	assert.Equal(t, fixed.UTC(), row.ClaimLogActionDate)
	assert.Equal(t, "CLM-2026-0001", row.ClaimLogMeta["claim_no"])
}

func TestAppendCreatedHasNoOldStatus(t *testing.T) {
	store := &recordingStore{}
	row, err := NewWriter().Append(context.Background(), store, Entry{
		ClaimID:   uuid.New(),
		Action:    model.ClaimActionCreated,
		NewStatus: model.ClaimStatusDraft,
		ActionBy:  uuid.New(),
	})
	require.NoError(t, err)
	assert.Nil(t, row.ClaimLogOldStatus)
	assert.Nil(t, row.ClaimLogDescription)
}

func TestAppendRejectsBadEntries(t *testing.T) {
	store := &recordingStore{}
	w := NewWriter()
	ctx := context.Background()

	_, err := w.Append(ctx, store, Entry{Action: model.ClaimActionCreated, ActionBy: uuid.New()})
	assert.Error(t, err)

	_, err = w.Append(ctx, store, Entry{ClaimID: uuid.New(), Action: "ARCHIVED", ActionBy: uuid.New()})
	assert.Error(t, err)

	_, err = w.Append(ctx, store, Entry{ClaimID: uuid.New(), Action: model.ClaimActionCreated, NewStatus: 9, ActionBy: uuid.New()})
	assert.Error(t, err)

	_, err = w.Append(ctx, store, Entry{ClaimID: uuid.New(), Action: model.ClaimActionCreated})
	assert.Error(t, err)

	assert.Empty(t, store.rows)
}

func TestAppendPropagatesStoreError(t *testing.T) {
	boom := errors.New("insert failed")
	_, err := NewWriter().Append(context.Background(), &recordingStore{err: boom}, Entry{
		ClaimID:   uuid.New(),
		Action:    model.ClaimActionDeleted,
		OldStatus: model.ClaimStatusDraft.Ptr(),
		NewStatus: model.ClaimStatusDraft,
		ActionBy:  uuid.New(),
	})
	assert.ErrorIs(t, err, boom)
}

func TestAppendStampsStrictlyIncrease(t *testing.T) {
	frozen := time.Date(2026, 5, 2, 9, 30, 0, 123456789, time.UTC)
	w := &Writer{Now: func() time.Time { return frozen }}
	store := &recordingStore{}
	claimID, actor := uuid.New(), uuid.New()

	for _, a := range []model.ClaimAction{model.ClaimActionCreated, model.ClaimActionSubmitted, model.ClaimActionApproved} {
		_, err := w.Append(context.Background(), store, Entry{ClaimID: claimID, Action: a, NewStatus: model.ClaimStatusPending, ActionBy: actor})
		require.NoError(t, err)
	}
	require.Len(t, store.rows, 3)

	base := frozen.Truncate(time.Microsecond)
	for i, r := range store.rows {
		assert.Equal(t, base.Add(time.Duration(i)*time.Microsecond), r.ClaimLogActionDate)
	}

	// the clock catching up resumes real time
	frozen = frozen.Add(time.Second)
	row, err := w.Append(context.Background(), store, Entry{ClaimID: claimID, Action: model.ClaimActionUpdated, NewStatus: model.ClaimStatusPending, ActionBy: actor})
	require.NoError(t, err)
	assert.Equal(t, frozen.Truncate(time.Microsecond), row.ClaimLogActionDate)
}
