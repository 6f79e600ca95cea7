package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authRepo "claimcenter_backend/internals/features/users/auth/repository"
	authService "claimcenter_backend/internals/features/users/auth/service"
	"claimcenter_backend/internals/features/users/user/dto"
	"claimcenter_backend/internals/features/users/user/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/identity"
)

const (
	ErrMsgUserNotFound   = "user not found"
	ErrMsgEmailTaken     = "email already registered"
	ErrMsgBranchNotFound = "branch not found"
	ErrMsgDeleteSelf     = "you cannot delete your own account"
	ErrMsgAdminOnly      = "only ADMIN may manage users"
)

// UserService is admin user management. Every operation requires ADMIN.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func requireAdmin(id identity.Context) error {
	if !id.Valid() {
		return apperror.Unauthenticated("Unauthorized")
	}
	if !id.IsAdmin() {
		return apperror.Forbidden(ErrMsgAdminOnly)
	}
	return nil
}

func (s *UserService) List(ctx context.Context, id identity.Context, q dto.ListUsersQuery, p helper.Paging) ([]model.UserModel, int64, error) {
	if err := requireAdmin(id); err != nil {
		return nil, 0, err
	}

	filtered := func() *gorm.DB {
		tx := s.DB.WithContext(ctx).Model(&model.UserModel{})
		if term := strings.TrimSpace(q.Q); term != "" {
			like := "%" + helper.EscapeLike(term) + "%"
			tx = tx.Where("(user_email ILIKE ? OR user_full_name ILIKE ?)", like, like)
		}
		if role := strings.TrimSpace(q.Role); role != "" {
			tx = tx.Where("user_role = ?", strings.ToUpper(role))
		}
		if q.BranchID != nil && *q.BranchID != uuid.Nil {
			tx = tx.Where("user_branch_id = ?", *q.BranchID)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, apperror.Dependency("failed to count users", err)
	}

	var rows []model.UserModel
	if err := filtered().Preload("Branch").
		Order("user_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, apperror.Dependency("failed to list users", err)
	}
	return rows, total, nil
}

func (s *UserService) Get(ctx context.Context, id identity.Context, userID uuid.UUID) (*model.UserModel, error) {
	if err := requireAdmin(id); err != nil {
		return nil, err
	}
	u, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return nil, userErr(err)
	}
	return u, nil
}

// Create provisions an account whose initial password is the email local part.
func (s *UserService) Create(ctx context.Context, id identity.Context, req dto.CreateUserRequest) (*model.UserModel, error) {
	if err := requireAdmin(id); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := authService.HashPassword(dto.DefaultPassword(req.Email))
	if err != nil {
		return nil, apperror.Dependency("failed to hash password", err)
	}

	u := &model.UserModel{
		UserID:       uuid.New(),
		UserEmail:    req.Email,
		UserFullName: req.FullName,
		UserPhone:    req.Phone,
		UserRole:     req.Role,
		UserBranchID: req.BranchID,
		UserPassword: hash,
		UserIsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, writeErr(err)
	}
	log.Printf("[UserService] %s created user %s (%s)", id.UserID, u.UserEmail, u.UserRole)
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id identity.Context, userID uuid.UUID, req dto.UpdateUserRequest) (*model.UserModel, error) {
	if err := requireAdmin(id); err != nil {
		return nil, err
	}
	u, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return nil, userErr(err)
	}
	cols, err := req.Apply(u)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return u, nil
	}
	if err := s.DB.WithContext(ctx).Model(&model.UserModel{}).
		Where("user_id = ?", u.UserID).
		Updates(cols).Error; err != nil {
		return nil, writeErr(err)
	}
	if _, ok := cols["user_branch_id"]; ok {
		// branch berubah: muat ulang relasi
		if fresh, err := authRepo.FindUserByID(ctx, s.DB, userID); err == nil {
			u = fresh
		}
	}
	log.Printf("[UserService] %s updated user %s", id.UserID, u.UserID)
	return u, nil
}

// Delete is a soft delete. Admins cannot remove their own account.
func (s *UserService) Delete(ctx context.Context, id identity.Context, userID uuid.UUID) error {
	if err := requireAdmin(id); err != nil {
		return err
	}
	if userID == id.UserID {
		return apperror.Validation(ErrMsgDeleteSelf)
	}
	res := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserModel{})
	if res.Error != nil {
		return apperror.Dependency("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound(ErrMsgUserNotFound)
	}
	log.Printf("[UserService] %s deleted user %s", id.UserID, userID)
	return nil
}

// ResetPassword sets the password back to the email local part.
func (s *UserService) ResetPassword(ctx context.Context, id identity.Context, userID uuid.UUID) error {
	if err := requireAdmin(id); err != nil {
		return err
	}
	u, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return userErr(err)
	}
	hash, err := authService.HashPassword(dto.DefaultPassword(u.UserEmail))
	if err != nil {
		return apperror.Dependency("failed to hash password", err)
	}
	if err := authRepo.UpdateUserPassword(ctx, s.DB, u.UserID, hash); err != nil {
		return userErr(err)
	}
	log.Printf("[UserService] %s reset password of %s", id.UserID, u.UserID)
	return nil
}

func userErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(ErrMsgUserNotFound)
	}
	return apperror.Dependency("failed to load user", err)
}

func writeErr(err error) error {
	switch {
	case helper.IsUniqueViolation(err):
		return apperror.Conflict(ErrMsgEmailTaken)
	case helper.IsForeignKeyViolation(err):
		return apperror.ValidationFields(map[string][]string{"branch_id": {ErrMsgBranchNotFound}})
	default:
		return apperror.Dependency("failed to save user", err)
	}
}
