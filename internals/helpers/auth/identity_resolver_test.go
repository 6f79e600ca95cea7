package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

func resolveWith(t *testing.T, locals map[string]any) (identity.Context, error) {
	t.Helper()
	var (
		got    identity.Context
		gotErr error
	)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		got, gotErr = ResolveIdentity(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	return got, gotErr
}

func TestResolveIdentityServiceCenter(t *testing.T) {
	userID := uuid.New()
	branchID := uuid.New()

	id, err := resolveWith(t, map[string]any{
		LocUserID:   userID.String(),
		LocRole:     "service_center",
		LocBranchID: branchID.String(),
		LocUserName: "Somsak",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
	assert.True(t, id.IsServiceCenter())
	require.NotNil(t, id.BranchID)
	assert.Equal(t, branchID, *id.BranchID)
	assert.Equal(t, "Somsak", id.Name)
}

func TestResolveIdentityAdminWithoutBranch(t *testing.T) {
	id, err := resolveWith(t, map[string]any{
		LocUserID: uuid.NewString(),
		LocRole:   "ADMIN",
	})

	require.NoError(t, err)
	assert.True(t, id.IsAdmin())
	assert.False(t, id.HasBranch())
}

func TestResolveIdentityMalformedBranchMeansNoBranch(t *testing.T) {
	id, err := resolveWith(t, map[string]any{
		LocUserID:   uuid.NewString(),
		LocRole:     "SERVICE_CENTER",
		LocBranchID: "not-a-uuid",
	})

	require.NoError(t, err)
	assert.False(t, id.HasBranch())
}

func TestResolveIdentityRejectsMissingUserOrRole(t *testing.T) {
	_, err := resolveWith(t, map[string]any{LocRole: "ADMIN"})
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = resolveWith(t, map[string]any{LocUserID: uuid.NewString(), LocRole: "owner"})
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}
