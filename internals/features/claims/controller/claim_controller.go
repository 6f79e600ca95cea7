package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/features/claims/service"
	helper "claimcenter_backend/internals/helpers"
	authHelper "claimcenter_backend/internals/helpers/auth"
	"claimcenter_backend/internals/helpers/identity"
)

type ClaimController struct {
	Svc   *service.ClaimService
	Query *service.ClaimQueryService
}

func NewClaimController(repo repository.Repository) *ClaimController {
	return &ClaimController{
		Svc:   service.NewClaimService(repo),
		Query: service.NewClaimQueryService(repo),
	}
}

const errMsgInvalidClaimID = "Invalid claim id"

// withClaim resolves the caller and the :id param before handing off.
func withClaim(c *fiber.Ctx, fn func(id identity.Context, claimID uuid.UUID) error) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	claimID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, errMsgInvalidClaimID)
	}
	return fn(id, claimID)
}

/* =========================
   READ
   ========================= */

// GET /api/claims?status=&branch_id=&search=&start_date=&end_date=&page=&per_page=
func (cc *ClaimController) List(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var q dto.ClaimListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	p := helper.ResolvePaging(c, dto.DefaultPageSize, dto.MaxPageSize)

	page, err := cc.Query.List(c.UserContext(), id, q, p.Page, p.PerPage)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPaginationFromPage(page.Total, page.Page, page.PageSize)
	return helper.JsonList(c, "Claims fetched successfully", dto.FromClaimModels(page.Items), pg)
}

// GET /api/claims/:id
func (cc *ClaimController) Get(c *fiber.Ctx) error {
	return withClaim(c, func(id identity.Context, claimID uuid.UUID) error {
		d, err := cc.Query.Get(c.UserContext(), id, claimID)
		if err != nil {
			return helper.FromError(c, err)
		}
		return helper.JsonOK(c, "Claim fetched successfully", dto.ClaimDetailResponse{
			ClaimResponse: dto.FromClaimModel(d.Claim),
			Files:         dto.FromClaimFileModels(d.Files),
			Logs:          dto.FromClaimLogModels(d.Logs),
		})
	})
}

// GET /api/claims/export (same filters as List, no paging)
func (cc *ClaimController) Export(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var q dto.ClaimListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	var buf bytes.Buffer
	if _, err := cc.Query.ExportCSV(c.UserContext(), id, q, &buf); err != nil {
		return helper.FromError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="claims_%s.csv"`, time.Now().Format("20060102_150405")))
	return c.Send(buf.Bytes())
}

// GET /api/dashboard/stats
func (cc *ClaimController) Stats(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var q dto.ClaimListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	stats, err := cc.Query.Stats(c.UserContext(), id, q)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Stats fetched successfully", stats)
}

/* =========================
   WRITE
   ========================= */

// POST /api/claims
func (cc *ClaimController) Create(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	claim, err := cc.Svc.Create(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Claim created successfully", dto.FromClaimModel(claim))
}

// PATCH /api/claims/:id
func (cc *ClaimController) Update(c *fiber.Ctx) error {
	return withClaim(c, func(id identity.Context, claimID uuid.UUID) error {
		var req dto.PatchClaimRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		claim, err := cc.Svc.Update(c.UserContext(), id, claimID, req)
		if err != nil {
			return helper.FromError(c, err)
		}
		return helper.JsonUpdated(c, "Claim updated successfully", dto.FromClaimModel(claim))
	})
}

// DELETE /api/claims/:id
func (cc *ClaimController) Delete(c *fiber.Ctx) error {
	return withClaim(c, func(id identity.Context, claimID uuid.UUID) error {
		if err := cc.Svc.Delete(c.UserContext(), id, claimID); err != nil {
			return helper.FromError(c, err)
		}
		return helper.JsonDeleted(c, "Claim deleted successfully", fiber.Map{"claim_id": claimID})
	})
}

/* =========================
   DECISIONS (ADMIN)
   ========================= */

type decideFunc func(c *fiber.Ctx, id identity.Context, claimID uuid.UUID, note *string) (any, error)

func (cc *ClaimController) decision(msg string, fn decideFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return withClaim(c, func(id identity.Context, claimID uuid.UUID) error {
			var req dto.DecisionRequest
			if len(c.Body()) > 0 {
				if err := c.BodyParser(&req); err != nil {
					return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
				}
			}
			out, err := fn(c, id, claimID, req.Note)
			if err != nil {
				return helper.FromError(c, err)
			}
			return helper.JsonUpdated(c, msg, out)
		})
	}
}

// POST /api/claims/:id/approve
func (cc *ClaimController) Approve() fiber.Handler {
	return cc.decision("Claim approved", func(c *fiber.Ctx, id identity.Context, claimID uuid.UUID, note *string) (any, error) {
		claim, err := cc.Svc.Approve(c.UserContext(), id, claimID, note)
		if err != nil {
			return nil, err
		}
		return dto.FromClaimModel(claim), nil
	})
}

// POST /api/claims/:id/reject
func (cc *ClaimController) Reject() fiber.Handler {
	return cc.decision("Claim rejected", func(c *fiber.Ctx, id identity.Context, claimID uuid.UUID, note *string) (any, error) {
		claim, err := cc.Svc.Reject(c.UserContext(), id, claimID, note)
		if err != nil {
			return nil, err
		}
		return dto.FromClaimModel(claim), nil
	})
}

// POST /api/claims/:id/request-info
func (cc *ClaimController) RequestInfo() fiber.Handler {
	return cc.decision("More information requested", func(c *fiber.Ctx, id identity.Context, claimID uuid.UUID, note *string) (any, error) {
		claim, err := cc.Svc.RequestInfo(c.UserContext(), id, claimID, note)
		if err != nil {
			return nil, err
		}
		return dto.FromClaimModel(claim), nil
	})
}
