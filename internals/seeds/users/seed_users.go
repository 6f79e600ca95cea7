package users

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"claimcenter_backend/internals/constants"
	branchModel "claimcenter_backend/internals/features/masters/branches/model"
	authService "claimcenter_backend/internals/features/users/auth/service"
	userModel "claimcenter_backend/internals/features/users/user/model"
)

func strPtr(s string) *string { return &s }

func SeedRoles(db *gorm.DB) error {
	roles := []userModel.RoleModel{
		{RoleCode: constants.RoleAdmin, RoleName: "ผู้ดูแลระบบ", RoleDescription: strPtr("อนุมัติ/ปฏิเสธเคลม และจัดการข้อมูลทั้งหมด")},
		{RoleCode: constants.RoleServiceCenter, RoleName: "ศูนย์บริการ", RoleDescription: strPtr("สร้างและจัดการเคลมของสาขาตัวเอง")},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}

type UserSeed struct {
	Email      string
	Password   string
	FullName   string
	Phone      string
	Role       string
	BranchCode string
}

// SeedUser inserts u unless the email already exists. Existing passwords
// are never overwritten.
func SeedUser(db *gorm.DB, u UserSeed) error {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" || u.Password == "" {
		return fmt.Errorf("seed user: email and password are required")
	}

	var existing userModel.UserModel
	err := db.Unscoped().Where("LOWER(user_email) = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("[SEED] user %s sudah ada, dilewati", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var branchID *uuid.UUID
	if u.BranchCode != "" {
		var b branchModel.BranchModel
		if err := db.Where("branch_code = ?", u.BranchCode).First(&b).Error; err != nil {
			return fmt.Errorf("seed user %s: branch %s: %w", email, u.BranchCode, err)
		}
		branchID = &b.BranchID
	}

	hash, err := authService.HashPassword(u.Password)
	if err != nil {
		return err
	}
	row := userModel.UserModel{
		UserID:       uuid.New(),
		UserEmail:    email,
		UserFullName: u.FullName,
		UserRole:     u.Role,
		UserBranchID: branchID,
		UserPassword: hash,
		UserIsActive: true,
	}
	if u.Phone != "" {
		row.UserPhone = strPtr(u.Phone)
	}
	if err := db.Create(&row).Error; err != nil {
		return err
	}
	log.Printf("[SEED] user %s (%s) dibuat", email, u.Role)
	return nil
}

// DemoServiceUsers are the two branch accounts of the demo data set.
func DemoServiceUsers(password string) []UserSeed {
	return []UserSeed{
		{Email: "service1@demo.com", Password: password, FullName: "เจ้าหน้าที่ สาขามีนบุรี", Phone: "081-222-2222", Role: constants.RoleServiceCenter, BranchCode: "BR001"},
		{Email: "service2@demo.com", Password: password, FullName: "เจ้าหน้าที่ สาขาพิบูลสงคราม", Phone: "081-333-3333", Role: constants.RoleServiceCenter, BranchCode: "BR002"},
	}
}
