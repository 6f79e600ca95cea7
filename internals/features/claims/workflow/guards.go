package workflow

import (
	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

const (
	ErrMsgUnauthenticated   = "Unauthorized"
	ErrMsgAdminOnly         = "only ADMIN may perform this action"
	ErrMsgNoBranch          = "user has no branch assigned"
	ErrMsgNotCreator        = "only the creator or ADMIN may modify this claim"
	ErrMsgSubmittedReadOnly = "cannot edit a submitted claim"
	ErrMsgDeleteDraftOnly   = "only draft claims can be deleted"
	ErrMsgOtherBranch       = "claim belongs to another branch"
	ErrMsgStateNotPermitted = "claim not in a state that permits this action"
	ErrMsgNoteRequired      = "note required"
	ErrMsgNotFound          = "claim not found"
	ErrMsgStaleStatus       = "claim status changed concurrently; reload and retry"
)

// CheckRole gates admin-only actions. It runs before the claim is loaded,
// so a non-admin learns nothing about whether the claim exists.
func CheckRole(a Action, id identity.Context) error {
	if err := ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	if t, ok := table[a]; ok && t.AdminOnly && !id.IsAdmin() {
		return apperror.Forbidden(ErrMsgAdminOnly)
	}
	return nil
}

// CheckCreate: SERVICE_CENTER callers need a branch to file claims.
func CheckCreate(id identity.Context) error {
	if err := ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	if id.IsServiceCenter() && !id.HasBranch() {
		return apperror.Validation(ErrMsgNoBranch)
	}
	return nil
}

// CheckView: ADMIN sees everything, SERVICE_CENTER only its own branch.
func CheckView(id identity.Context, c *model.ClaimModel) error {
	if err := ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	if id.IsAdmin() {
		return nil
	}
	if !id.InBranch(c.ClaimBranchID) {
		return apperror.Forbidden(ErrMsgOtherBranch)
	}
	return nil
}

// CheckEdit guards Update. ADMIN may edit in any status; the creator only
// while the claim is Draft or NeedInfo. Submitting additionally needs an
// editable status whoever asks.
func CheckEdit(id identity.Context, c *model.ClaimModel, submit bool) error {
	if err := ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		if c.ClaimCreateBy != id.UserID {
			return apperror.Forbidden(ErrMsgNotCreator)
		}
		if !c.ClaimStatus.Editable() {
			return apperror.Forbidden(ErrMsgSubmittedReadOnly)
		}
	}
	if submit {
		if _, err := Target(ActionSubmit, c.ClaimStatus); err != nil {
			return err
		}
	}
	return nil
}

// CheckDecision guards approve/reject/request-info on a loaded claim.
func CheckDecision(a Action, c *model.ClaimModel) (model.ClaimStatus, error) {
	return Target(a, c.ClaimStatus)
}

// CheckDelete: ADMIN any status, the creator only while Draft.
func CheckDelete(id identity.Context, c *model.ClaimModel) error {
	if err := ErrIfInvalidIdentity(id); err != nil {
		return err
	}
	if id.IsAdmin() {
		return nil
	}
	if c.ClaimCreateBy != id.UserID {
		return apperror.Forbidden(ErrMsgNotCreator)
	}
	if c.ClaimStatus != model.ClaimStatusDraft {
		return apperror.Forbidden(ErrMsgDeleteDraftOnly)
	}
	return nil
}

// CheckAttach guards evidence upload/removal: same visibility as CheckView,
// and non-admins cannot touch evidence once the claim is decided.
func CheckAttach(id identity.Context, c *model.ClaimModel) error {
	if err := CheckView(id, c); err != nil {
		return err
	}
	if !id.IsAdmin() && c.ClaimStatus.IsTerminal() {
		return apperror.Conflict(ErrMsgStateNotPermitted)
	}
	return nil
}
