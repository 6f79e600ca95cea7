// Package audit writes claim_logs rows. The log is append-only: the store
// it writes through exposes no way to change or remove an entry.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"claimcenter_backend/internals/features/claims/model"
)

// Store is the only capability the writer needs.
type Store interface {
	AppendLog(ctx context.Context, log *model.ClaimLogModel) error
}

type Entry struct {
	ClaimID     uuid.UUID
	Action      model.ClaimAction
	Description string
	OldStatus   *model.ClaimStatus
	NewStatus   model.ClaimStatus
	ActionBy    uuid.UUID
	Meta        map[string]any
}

// Writer stamps entries at microsecond precision, the resolution of
// timestamptz. Stamps from one Writer strictly increase, so entries of a
// single mutation keep their order even under a frozen or coarse clock.
type Writer struct {
	Now func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewWriter() *Writer {
	return &Writer{Now: time.Now}
}

// Append validates e and stores it. Pass the transaction-bound store when
// the entry belongs to a claim mutation.
func (w *Writer) Append(ctx context.Context, store Store, e Entry) (*model.ClaimLogModel, error) {
	if e.ClaimID == uuid.Nil {
		return nil, fmt.Errorf("audit: claim id required")
	}
	if !e.Action.Valid() {
		return nil, fmt.Errorf("audit: unknown action %q", e.Action)
	}
	if !e.NewStatus.Valid() || (e.OldStatus != nil && !e.OldStatus.Valid()) {
		return nil, fmt.Errorf("audit: invalid status")
	}
	if e.ActionBy == uuid.Nil {
		return nil, fmt.Errorf("audit: actor required")
	}

	row := &model.ClaimLogModel{
		ClaimLogID:         uuid.New(),
		ClaimLogClaimID:    e.ClaimID,
		ClaimLogAction:     e.Action,
		ClaimLogOldStatus:  e.OldStatus,
		ClaimLogNewStatus:  e.NewStatus,
		ClaimLogActionBy:   e.ActionBy,
		ClaimLogActionDate: w.stamp(),
	}
	if e.Description != "" {
		d := e.Description
		row.ClaimLogDescription = &d
	}
	if len(e.Meta) > 0 {
		row.ClaimLogMeta = datatypes.JSONMap(e.Meta)
	}

	if err := store.AppendLog(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (w *Writer) stamp() time.Time {
	if w == nil {
		return time.Now().UTC().Truncate(time.Microsecond)
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	t := now().UTC().Truncate(time.Microsecond)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !t.After(w.last) {
		t = w.last.Add(time.Microsecond)
	}
	w.last = t
	return t
}
