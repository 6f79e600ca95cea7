package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"claimcenter_backend/internals/configs"
	"claimcenter_backend/internals/features/users/auth/dto"
	authRepo "claimcenter_backend/internals/features/users/auth/repository"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
	authHelper "claimcenter_backend/internals/helpers/auth"
	"claimcenter_backend/internals/helpers/identity"
)

const (
	ErrMsgBadCredentials  = "invalid email or password"
	ErrMsgAccountDisabled = "account is disabled"
	ErrMsgWrongPassword   = "current password is incorrect"
	ErrMsgUserNotFound    = "user not found"
)

type AuthService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, Secret: configs.JWTSecret, TTL: configs.JWTTTL, Now: time.Now}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := authRepo.FindUserByEmail(ctx, s.DB, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated(ErrMsgBadCredentials)
		}
		return nil, apperror.Dependency("failed to load user", err)
	}
	if !CheckPasswordHash(user.UserPassword, req.Password) {
		return nil, apperror.Unauthenticated(ErrMsgBadCredentials)
	}
	if !user.UserIsActive {
		return nil, apperror.Forbidden(ErrMsgAccountDisabled)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, exp, err := authHelper.IssueAccessToken(s.Secret, authHelper.TokenSubject{
		UserID:   user.UserID,
		Role:     user.UserRole,
		BranchID: user.UserBranchID,
		Name:     user.UserFullName,
	}, s.now(), ttl)
	if err != nil {
		return nil, apperror.Dependency("failed to issue token", err)
	}

	log.Printf("[AUTH] login %s (%s)", user.UserEmail, user.UserRole)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromUserModel(user),
	}, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout blacklists raw until its own expiry. Idempotent.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	exp, ok := authHelper.TokenExpiry(raw)
	if !ok {
		exp = s.now().Add(s.TTL)
	}
	if err := authHelper.BlacklistToken(ctx, s.DB, raw, s.Secret, exp); err != nil {
		return apperror.Dependency("failed to revoke token", err)
	}
	return nil
}

/* ==========================
   ME
========================== */

func (s *AuthService) Me(ctx context.Context, id identity.Context) (*dto.UserSummary, error) {
	if !id.Valid() {
		return nil, apperror.Unauthenticated("Unauthorized")
	}
	user, err := authRepo.FindUserByID(ctx, s.DB, id.UserID)
	if err != nil {
		return nil, userErr(err)
	}
	out := dto.FromUserModel(user)
	return &out, nil
}

/* ==========================
   CHANGE PASSWORD
========================== */

func (s *AuthService) ChangePassword(ctx context.Context, id identity.Context, req dto.ChangePasswordRequest) error {
	if !id.Valid() {
		return apperror.Unauthenticated("Unauthorized")
	}
	if err := req.Validate(); err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(ctx, s.DB, id.UserID)
	if err != nil {
		return userErr(err)
	}
	if !CheckPasswordHash(user.UserPassword, req.CurrentPassword) {
		return apperror.ValidationFields(map[string][]string{"current_password": {ErrMsgWrongPassword}})
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Dependency("failed to hash password", err)
	}
	if err := authRepo.UpdateUserPassword(ctx, s.DB, user.UserID, hash); err != nil {
		return userErr(err)
	}
	log.Printf("[AUTH] password changed for %s", user.UserID)
	return nil
}

func userErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(ErrMsgUserNotFound)
	}
	return apperror.Dependency("failed to load user", err)
}
