package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "claimcenter_backend/internals/features/users/user/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

const MinPasswordLength = 4

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=4"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (r ChangePasswordRequest) Validate() error {
	if err := helper.ValidateStruct(r); err != nil {
		return err
	}
	if r.NewPassword != r.ConfirmPassword {
		return apperror.ValidationFields(map[string][]string{"confirm_password": {"does not match new_password"}})
	}
	return nil
}

type UserSummary struct {
	UserID     uuid.UUID  `json:"user_id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Phone      *string    `json:"phone,omitempty"`
	Role       string     `json:"role"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
	BranchName *string    `json:"branch_name,omitempty"`
}

func FromUserModel(u *userModel.UserModel) UserSummary {
	out := UserSummary{
		UserID:   u.UserID,
		Email:    u.UserEmail,
		FullName: u.UserFullName,
		Phone:    u.UserPhone,
		Role:     u.UserRole,
		BranchID: u.UserBranchID,
	}
	if u.Branch != nil {
		name := u.Branch.BranchName
		out.BranchName = &name
	}
	return out
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        UserSummary `json:"user"`
}
