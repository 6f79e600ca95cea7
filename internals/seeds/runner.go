package seeds

import (
	"log"

	"gorm.io/gorm"

	"claimcenter_backend/internals/configs"
	"claimcenter_backend/internals/constants"
	"claimcenter_backend/internals/seeds/masters"
	"claimcenter_backend/internals/seeds/users"
)

// RunAllSeeds is idempotent; every step upserts or skips existing rows.
func RunAllSeeds(db *gorm.DB) error {
	steps := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"roles", users.SeedRoles},
		{"branches", masters.SeedBranches},
		{"car_models", masters.SeedCarModels},
		{"mileages", masters.SeedMileages},
		{"vehicles", masters.SeedVehicles},
	}
	for _, s := range steps {
		if err := s.fn(db); err != nil {
			log.Printf("[SEED] %s gagal: %v", s.name, err)
			return err
		}
	}

	//* Users
	password := configs.GetEnv("SEED_ADMIN_PASSWORD", "password123")
	admin := users.UserSeed{
		Email:    configs.GetEnv("SEED_ADMIN_EMAIL", "admin@demo.com"),
		Password: password,
		FullName: "ผู้ดูแลระบบ",
		Phone:    "081-111-1111",
		Role:     constants.RoleAdmin,
	}
	if err := users.SeedUser(db, admin); err != nil {
		return err
	}
	if configs.GetEnvBool("SEED_DEMO_USERS", false) {
		for _, u := range users.DemoServiceUsers(password) {
			if err := users.SeedUser(db, u); err != nil {
				return err
			}
		}
	}
	log.Println("[SEED] selesai")
	return nil
}
