package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/users/user/dto"
	"claimcenter_backend/internals/features/users/user/service"
	helper "claimcenter_backend/internals/helpers"
	authHelper "claimcenter_backend/internals/helpers/auth"
)

type UserController struct {
	DB  *gorm.DB
	Svc *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Svc: service.NewUserService(db)}
}

// GET /api/admin/users?q=&role=&branch_id=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var q dto.ListUsersQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := uc.Svc.List(c.UserContext(), id, q, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Users fetched successfully", dto.FromUserModels(rows), pg)
}

// GET /api/admin/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	userID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	u, err := uc.Svc.Get(c.UserContext(), id, userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "User fetched successfully", dto.FromUserModel(u))
}

// POST /api/admin/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, err := uc.Svc.Create(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "User created successfully", dto.FromUserModel(u))
}

// PATCH /api/admin/users/:id
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	userID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, err := uc.Svc.Update(c.UserContext(), id, userID, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "User updated successfully", dto.FromUserModel(u))
}

// DELETE /api/admin/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	userID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if err := uc.Svc.Delete(c.UserContext(), id, userID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted successfully", fiber.Map{"user_id": userID})
}

// POST /api/admin/users/:id/reset-password
func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	userID, ok := helper.ParseUUIDParam(c, "id")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if err := uc.Svc.ResetPassword(c.UserContext(), id, userID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password reset to default", nil)
}
