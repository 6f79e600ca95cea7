package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/users/auth/dto"
	"claimcenter_backend/internals/features/users/auth/service"
	helper "claimcenter_backend/internals/helpers"
	authHelper "claimcenter_backend/internals/helpers/auth"
)

type AuthController struct {
	DB  *gorm.DB
	Svc *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Svc: service.NewAuthService(db)}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	res, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), authHelper.RawToken(c)); err != nil {
		return helper.FromError(c, err)
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout successful", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	me, err := ac.Svc.Me(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", me)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	id, err := authHelper.ResolveIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), id, req); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
