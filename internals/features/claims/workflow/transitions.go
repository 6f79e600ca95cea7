// Package workflow is the claim lifecycle: the transition table and the
// guards every mutation runs before it touches storage. Nothing here does
// I/O; the claims service drives it.
package workflow

import (
	"strings"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

type Action string

const (
	ActionUpdate      Action = "update"
	ActionSubmit      Action = "submit"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionRequestInfo Action = "request_info"
	ActionDelete      Action = "delete"
)

const DefaultApprovalNote = "Approved"

// Log descriptions.
const (
	DescCreated     = "claim created"
	DescSubmitted   = "submitted for approval"
	DescResubmitted = "resubmitted after edits"
	DescUpdated     = "claim updated"
	DescDeleted     = "claim deleted"
)

// Transition is one row of the lifecycle table. To nil keeps the status.
type Transition struct {
	Action       Action
	From         []model.ClaimStatus
	To           *model.ClaimStatus
	Log          model.ClaimAction
	AdminOnly    bool
	NoteRequired bool
}

var table = map[Action]Transition{
	ActionSubmit: {
		Action: ActionSubmit,
		From:   []model.ClaimStatus{model.ClaimStatusDraft, model.ClaimStatusNeedInfo},
		To:     model.ClaimStatusPending.Ptr(),
		Log:    model.ClaimActionSubmitted,
	},
	ActionApprove: {
		Action:    ActionApprove,
		From:      []model.ClaimStatus{model.ClaimStatusPending},
		To:        model.ClaimStatusApproved.Ptr(),
		Log:       model.ClaimActionApproved,
		AdminOnly: true,
	},
	ActionReject: {
		Action:       ActionReject,
		From:         []model.ClaimStatus{model.ClaimStatusPending},
		To:           model.ClaimStatusRejected.Ptr(),
		Log:          model.ClaimActionRejected,
		AdminOnly:    true,
		NoteRequired: true,
	},
	ActionRequestInfo: {
		Action:       ActionRequestInfo,
		From:         []model.ClaimStatus{model.ClaimStatusPending},
		To:           model.ClaimStatusNeedInfo.Ptr(),
		Log:          model.ClaimActionInfoRequested,
		AdminOnly:    true,
		NoteRequired: true,
	},
	ActionUpdate: {
		Action: ActionUpdate,
		From:   model.AllClaimStatuses,
		Log:    model.ClaimActionUpdated,
	},
	ActionDelete: {
		Action: ActionDelete,
		From:   model.AllClaimStatuses,
		Log:    model.ClaimActionDeleted,
	},
}

// Lookup returns the table row for a status-changing or in-place action.
func Lookup(a Action) (Transition, bool) {
	t, ok := table[a]
	return t, ok
}

// Target is the status a claim in from ends up in after a. Actions not
// allowed from that status are a Conflict.
func Target(a Action, from model.ClaimStatus) (model.ClaimStatus, error) {
	t, ok := table[a]
	if !ok {
		return from, apperror.Conflict("unknown claim action " + string(a))
	}
	for _, s := range t.From {
		if s == from {
			if t.To == nil {
				return from, nil
			}
			return *t.To, nil
		}
	}
	return from, apperror.Conflict(ErrMsgStateNotPermitted)
}

// InitialStatus for a new claim.
func InitialStatus(submitNow bool) model.ClaimStatus {
	if submitNow {
		return model.ClaimStatusPending
	}
	return model.ClaimStatusDraft
}

// SubmitDescription differs for a first submission and a resubmission.
func SubmitDescription(from model.ClaimStatus) string {
	if from == model.ClaimStatusNeedInfo {
		return DescResubmitted
	}
	return DescSubmitted
}

// DecisionNote normalises the note for approve/reject/request-info.
// Reject and request-info need a non-blank note; approve falls back to
// DefaultApprovalNote.
func DecisionNote(a Action, note *string) (string, error) {
	n := ""
	if note != nil {
		n = strings.TrimSpace(*note)
	}
	t, ok := table[a]
	if !ok || !t.AdminOnly {
		return n, nil
	}
	if n == "" {
		if t.NoteRequired {
			return "", apperror.ValidationFields(map[string][]string{"note": {ErrMsgNoteRequired}})
		}
		return DefaultApprovalNote, nil
	}
	return n, nil
}

// ErrIfInvalidIdentity rejects callers without a resolvable identity.
func ErrIfInvalidIdentity(id identity.Context) error {
	if !id.Valid() {
		return apperror.Unauthenticated(ErrMsgUnauthenticated)
	}
	return nil
}
