package model

import "fmt"

// ClaimStatus mirrors claims.claim_status (smallint). The set is closed.
type ClaimStatus int16

const (
	ClaimStatusDraft    ClaimStatus = 0
	ClaimStatusPending  ClaimStatus = 1
	ClaimStatusApproved ClaimStatus = 2
	ClaimStatusRejected ClaimStatus = 3
	ClaimStatusNeedInfo ClaimStatus = 4
)

var AllClaimStatuses = []ClaimStatus{
	ClaimStatusDraft,
	ClaimStatusPending,
	ClaimStatusApproved,
	ClaimStatusRejected,
	ClaimStatusNeedInfo,
}

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusDraft, ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected, ClaimStatusNeedInfo:
		return true
	}
	return false
}

// IsTerminal: Approved dan Rejected tidak punya transisi keluar.
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimStatusApproved || s == ClaimStatusRejected
}

// Editable by the creator without ADMIN rights.
func (s ClaimStatus) Editable() bool {
	return s == ClaimStatusDraft || s == ClaimStatusNeedInfo
}

func (s ClaimStatus) String() string {
	switch s {
	case ClaimStatusDraft:
		return "DRAFT"
	case ClaimStatusPending:
		return "PENDING"
	case ClaimStatusApproved:
		return "APPROVED"
	case ClaimStatusRejected:
		return "REJECTED"
	case ClaimStatusNeedInfo:
		return "NEED_INFO"
	default:
		return fmt.Sprintf("ClaimStatus(%d)", int16(s))
	}
}

func (s ClaimStatus) Ptr() *ClaimStatus { return &s }

/* =========================================================
   Log actions
   ========================================================= */

type ClaimAction string

const (
	ClaimActionCreated       ClaimAction = "CREATED"
	ClaimActionSubmitted     ClaimAction = "SUBMITTED"
	ClaimActionApproved      ClaimAction = "APPROVED"
	ClaimActionRejected      ClaimAction = "REJECTED"
	ClaimActionInfoRequested ClaimAction = "INFO_REQUESTED"
	ClaimActionUpdated       ClaimAction = "UPDATED"
	ClaimActionDeleted       ClaimAction = "DELETED"
)

func (a ClaimAction) Valid() bool {
	switch a {
	case ClaimActionCreated, ClaimActionSubmitted, ClaimActionApproved, ClaimActionRejected,
		ClaimActionInfoRequested, ClaimActionUpdated, ClaimActionDeleted:
		return true
	}
	return false
}
