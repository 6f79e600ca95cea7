package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/constants"
	"claimcenter_backend/internals/features/users/user/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

const (
	ErrMsgUnknownRole   = "must be ADMIN or SERVICE_CENTER"
	ErrMsgBranchMissing = "required for SERVICE_CENTER users"
)

/* ===================== REQUEST ===================== */

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	FullName string     `json:"full_name" validate:"required,max=150"`
	Phone    *string    `json:"phone" validate:"omitempty,max=30"`
	Role     string     `json:"role" validate:"required"`
	BranchID *uuid.UUID `json:"branch_id"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Role = constants.NormalizeRole(r.Role)
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		if p == "" {
			r.Phone = nil
		} else {
			r.Phone = &p
		}
	}
	if r.BranchID != nil && *r.BranchID == uuid.Nil {
		r.BranchID = nil
	}
}

// Validate runs after Normalize, so an unknown role is already "".
func (r *CreateUserRequest) Validate() error {
	fields := map[string][]string{}
	if err := helper.ValidateStruct(r); err != nil {
		var ae *apperror.Error
		if !errors.As(err, &ae) || len(ae.Fields) == 0 {
			return err
		}
		for k, v := range ae.Fields {
			fields[k] = v
		}
	}
	if r.Role == "" {
		fields["role"] = []string{ErrMsgUnknownRole}
	}
	if r.Role == constants.RoleServiceCenter && r.BranchID == nil {
		fields["branch_id"] = []string{ErrMsgBranchMissing}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields(fields)
	}
	return nil
}

// UpdateUserRequest: omitted fields stay, null clears (phone, branch only).
type UpdateUserRequest struct {
	FullName helper.PatchField[string]    `json:"full_name"`
	Phone    helper.PatchField[string]    `json:"phone"`
	Role     helper.PatchField[string]    `json:"role"`
	BranchID helper.PatchField[uuid.UUID] `json:"branch_id"`
	IsActive helper.PatchField[bool]      `json:"is_active"`
}

// Apply writes the patch into u and returns the changed columns.
func (p *UpdateUserRequest) Apply(u *model.UserModel) (map[string]any, error) {
	fields := map[string][]string{}
	cols := map[string]any{}

	if p.FullName.Present {
		name := ""
		if p.FullName.Value != nil {
			name = strings.TrimSpace(*p.FullName.Value)
		}
		switch {
		case name == "":
			fields["full_name"] = []string{"is required"}
		case len(name) > 150:
			fields["full_name"] = []string{"must be at most 150 characters"}
		case name != u.UserFullName:
			u.UserFullName = name
			cols["user_full_name"] = name
		}
	}
	if p.Phone.Present {
		var phone *string
		if p.Phone.Value != nil {
			if v := strings.TrimSpace(*p.Phone.Value); v != "" {
				phone = &v
			}
		}
		if phone != nil && len(*phone) > 30 {
			fields["phone"] = []string{"must be at most 30 characters"}
		} else {
			u.UserPhone = phone
			cols["user_phone"] = phone
		}
	}
	if p.Role.Present {
		role := ""
		if p.Role.Value != nil {
			role = constants.NormalizeRole(*p.Role.Value)
		}
		if role == "" {
			fields["role"] = []string{ErrMsgUnknownRole}
		} else if role != u.UserRole {
			u.UserRole = role
			cols["user_role"] = role
		}
	}
	if p.BranchID.Present {
		var b *uuid.UUID
		if p.BranchID.Value != nil && *p.BranchID.Value != uuid.Nil {
			v := *p.BranchID.Value
			b = &v
		}
		u.UserBranchID = b
		cols["user_branch_id"] = b
	}
	if p.IsActive.Present && p.IsActive.Value != nil && *p.IsActive.Value != u.UserIsActive {
		u.UserIsActive = *p.IsActive.Value
		cols["user_is_active"] = u.UserIsActive
	}

	if len(fields) == 0 && u.UserRole == constants.RoleServiceCenter && u.UserBranchID == nil {
		fields["branch_id"] = []string{ErrMsgBranchMissing}
	}
	if len(fields) > 0 {
		return nil, apperror.ValidationFields(fields)
	}
	return cols, nil
}

type ListUsersQuery struct {
	Q        string     `query:"q"`
	Role     string     `query:"role"`
	BranchID *uuid.UUID `query:"branch_id"`
}

/* ===================== RESPONSE ===================== */

type UserResponse struct {
	UserID     uuid.UUID  `json:"user_id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Phone      *string    `json:"phone"`
	Role       string     `json:"role"`
	BranchID   *uuid.UUID `json:"branch_id"`
	BranchName *string    `json:"branch_name"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromUserModel(u *model.UserModel) UserResponse {
	out := UserResponse{
		UserID:    u.UserID,
		Email:     u.UserEmail,
		FullName:  u.UserFullName,
		Phone:     u.UserPhone,
		Role:      u.UserRole,
		BranchID:  u.UserBranchID,
		IsActive:  u.UserIsActive,
		CreatedAt: u.UserCreatedAt,
		UpdatedAt: u.UserUpdatedAt,
	}
	if u.Branch != nil {
		name := u.Branch.BranchName
		out.BranchName = &name
	}
	return out
}

func FromUserModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromUserModel(&rows[i]))
	}
	return out
}

// DefaultPassword is the local part of the email.
func DefaultPassword(email string) string {
	email = strings.TrimSpace(email)
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
