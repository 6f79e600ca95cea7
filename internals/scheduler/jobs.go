package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	fileService "claimcenter_backend/internals/features/claims/claim_files/service"
	authHelper "claimcenter_backend/internals/helpers/auth"
)

const (
	DefaultBlacklistSchedule = "@every 6h"
	DefaultReaperSchedule    = "0 3 * * *"
)

// BlacklistCleanup drops blacklist rows whose token has already expired.
func BlacklistCleanup(db *gorm.DB, schedule string) Job {
	if schedule == "" {
		schedule = DefaultBlacklistSchedule
	}
	return Job{
		Name:     "token-blacklist-cleanup",
		Schedule: schedule,
		Timeout:  time.Minute,
		Run: func(ctx context.Context) error {
			n, err := authHelper.PurgeExpiredTokens(ctx, db, time.Now().UTC())
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("[CLEANUP] %d expired token(s) removed from blacklist", n)
			}
			return nil
		},
	}
}

// EvidenceReaper runs one reaper batch per tick.
func EvidenceReaper(r *fileService.EvidenceReaper, schedule string) Job {
	if schedule == "" {
		schedule = DefaultReaperSchedule
	}
	return Job{
		Name:     "evidence-reaper",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := r.Run(ctx)
			return err
		},
	}
}
