package controller

import (
	"github.com/gofiber/fiber/v2"

	fileDTO "claimcenter_backend/internals/features/claims/claim_files/dto"
	fileService "claimcenter_backend/internals/features/claims/claim_files/service"
	claimDTO "claimcenter_backend/internals/features/claims/dto"
	"claimcenter_backend/internals/features/claims/repository"
	helper "claimcenter_backend/internals/helpers"
	authHelper "claimcenter_backend/internals/helpers/auth"
	"claimcenter_backend/internals/helpers/storage"
)

type ClaimFileController struct {
	Svc *fileService.ClaimFileService
}

func NewClaimFileController(repo repository.Repository, store storage.ObjectStore) *ClaimFileController {
	return &ClaimFileController{Svc: fileService.NewClaimFileService(repo, store)}
}

// GET /api/claims/:id/files
func (fc *ClaimFileController) List(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	claimID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid claim id")
	}
	rows, err := fc.Svc.List(c.UserContext(), id, claimID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Files fetched successfully", claimDTO.FromClaimFileModels(rows))
}

// POST /api/claims/:id/files (multipart, field "files")
func (fc *ClaimFileController) Upload(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	claimID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid claim id")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected multipart/form-data")
	}

	rows, err := fc.Svc.Upload(c.UserContext(), id, claimID, fileDTO.FromFileHeaders(form.File[fileDTO.FormField]))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Files uploaded successfully", claimDTO.FromClaimFileModels(rows))
}

// DELETE /api/claims/:id/files/:fileId
func (fc *ClaimFileController) Delete(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	claimID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid claim id")
	}
	fileID, ok := helper.ParseUUIDParam(c, "fileId")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file id")
	}
	if err := fc.Svc.Delete(c.UserContext(), id, claimID, fileID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "File deleted successfully", fiber.Map{"file_id": fileID})
}
