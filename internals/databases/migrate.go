package database

import (
	"log"

	"gorm.io/gorm"

	claimModel "claimcenter_backend/internals/features/claims/model"
	branchModel "claimcenter_backend/internals/features/masters/branches/model"
	carModel "claimcenter_backend/internals/features/masters/car_models/model"
	mileageModel "claimcenter_backend/internals/features/masters/mileages/model"
	vehicleModel "claimcenter_backend/internals/features/masters/vehicles/model"
	authModel "claimcenter_backend/internals/features/users/auth/model"
	userModel "claimcenter_backend/internals/features/users/user/model"
)

// Models in dependency order (referenced tables first).
func Models() []any {
	return []any{
		&userModel.RoleModel{},
		&branchModel.BranchModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&carModel.CarModelModel{},
		&mileageModel.MileageModel{},
		&vehicleModel.VehicleModel{},
		&claimModel.ClaimModel{},
		&claimModel.ClaimLogModel{},
		&claimModel.ClaimFileModel{},
	}
}

// Indexes AutoMigrate cannot express (partial / expression indexes).
var extraIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(user_email))`,
	`CREATE INDEX IF NOT EXISTS idx_claims_active_date ON claims (claim_date DESC) WHERE claim_is_active`,
	`CREATE INDEX IF NOT EXISTS idx_claim_files_purge ON claim_files (claim_file_deleted_at)
		WHERE claim_file_is_active = false AND claim_file_purged_at IS NULL`,
}

// Migrate creates or updates every table this service owns.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	for _, stmt := range extraIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	log.Printf("[INFO] migrated %d tables", len(Models()))
	return nil
}
