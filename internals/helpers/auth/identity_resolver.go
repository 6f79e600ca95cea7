// file: internals/helpers/auth/identity_resolver.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

// Keys AuthJWT writes into c.Locals.
const (
	LocUserID   = "user_id"   // string UUID
	LocRole     = "userRole"  // ADMIN | SERVICE_CENTER
	LocBranchID = "branch_id" // string UUID, absent for users without a branch
	LocUserName = "user_name"
	LocRawToken = "raw_token"
)

// ResolveIdentity builds the caller's identity.Context from the locals
// hydrated by AuthJWT. A missing or malformed user id or role is
// Unauthenticated; a malformed branch id is treated as no branch.
func ResolveIdentity(c *fiber.Ctx) (identity.Context, error) {
	userID, err := uuid.Parse(localString(c, LocUserID))
	if err != nil || userID == uuid.Nil {
		return identity.Context{}, apperror.Unauthenticated("Unauthorized - invalid or missing user id")
	}

	id := identity.New(userID, localString(c, LocRole), nil)
	if id.Role == "" {
		return identity.Context{}, apperror.Unauthenticated("Unauthorized - role not found in token")
	}

	if raw := localString(c, LocBranchID); raw != "" {
		if b, err := uuid.Parse(raw); err == nil && b != uuid.Nil {
			id.BranchID = &b
		}
	}
	id.Name = localString(c, LocUserName)
	return id, nil
}

// RawToken is the bearer token of the current request, "" when absent.
func RawToken(c *fiber.Ctx) string {
	if s := localString(c, LocRawToken); s != "" {
		return s
	}
	return getRawAccessToken(c)
}

func localString(c *fiber.Ctx, key string) string {
	switch v := c.Locals(key).(type) {
	case string:
		return strings.TrimSpace(v)
	case uuid.UUID:
		if v == uuid.Nil {
			return ""
		}
		return v.String()
	default:
		return ""
	}
}
