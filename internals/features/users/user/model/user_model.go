package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "claimcenter_backend/internals/features/masters/branches/model"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	UserID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserEmail    string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email;column:user_email" json:"user_email"`
	UserFullName string     `gorm:"type:varchar(150);not null;column:user_full_name" json:"user_full_name"`
	UserPhone    *string    `gorm:"type:varchar(30);column:user_phone" json:"user_phone,omitempty"`
	UserRole     string     `gorm:"type:varchar(30);not null;column:user_role" json:"user_role"`
	UserBranchID *uuid.UUID `gorm:"type:uuid;column:user_branch_id" json:"user_branch_id,omitempty"`
	UserPassword string     `gorm:"type:text;not null;column:user_password" json:"-"`
	UserIsActive bool       `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"index;column:user_deleted_at" json:"-"`

	Branch *branchModel.BranchModel `gorm:"foreignKey:UserBranchID;references:BranchID" json:"branch,omitempty"`
}

func (UserModel) TableName() string { return "users" }
