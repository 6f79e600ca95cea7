// Package identity carries the caller of a service operation. Every claim
// operation receives a Context explicitly; nothing reads the caller from
// package state.
package identity

import (
	"github.com/google/uuid"

	"claimcenter_backend/internals/constants"
)

type Context struct {
	UserID   uuid.UUID
	Role     string
	BranchID *uuid.UUID
	Name     string
}

func New(userID uuid.UUID, role string, branchID *uuid.UUID) Context {
	return Context{UserID: userID, Role: constants.NormalizeRole(role), BranchID: branchID}
}

// Valid is false when there is no user or the role is unknown.
func (c Context) Valid() bool {
	return c.UserID != uuid.Nil && constants.NormalizeRole(c.Role) != ""
}

func (c Context) IsAdmin() bool {
	return constants.NormalizeRole(c.Role) == constants.RoleAdmin
}

func (c Context) IsServiceCenter() bool {
	return constants.NormalizeRole(c.Role) == constants.RoleServiceCenter
}

func (c Context) HasBranch() bool {
	return c.BranchID != nil && *c.BranchID != uuid.Nil
}

// InBranch reports whether the caller is assigned to branch b.
func (c Context) InBranch(b uuid.UUID) bool {
	return c.HasBranch() && *c.BranchID == b
}
