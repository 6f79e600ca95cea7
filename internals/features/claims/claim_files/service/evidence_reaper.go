package service

import (
	"context"
	"log"
	"time"

	"claimcenter_backend/internals/features/claims/repository"
	"claimcenter_backend/internals/helpers/storage"
)

const (
	DefaultRetention   = 30 * 24 * time.Hour
	DefaultReaperBatch = 200
)

// EvidenceReaper deletes the objects behind files that were soft-deleted
// longer than Retention ago and stamps purged_at on their rows.
type EvidenceReaper struct {
	Repo      repository.Repository
	Store     storage.ObjectStore
	Retention time.Duration
	Batch     int
	Now       func() time.Time
}

func NewEvidenceReaper(repo repository.Repository, store storage.ObjectStore, retention time.Duration) *EvidenceReaper {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &EvidenceReaper{Repo: repo, Store: store, Retention: retention, Batch: DefaultReaperBatch, Now: time.Now}
}

// Run processes one batch. Objects that fail to delete keep purged_at
// empty and are retried on the next run.
func (r *EvidenceReaper) Run(ctx context.Context) (int, error) {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	batch := r.Batch
	if batch <= 0 {
		batch = DefaultReaperBatch
	}

	files, err := r.Repo.ListPurgeableFiles(ctx, now.Add(-r.Retention), batch)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return purged, err
		}
		if err := r.Store.Delete(ctx, f.ClaimFileObjectKey); err != nil {
			log.Printf("[REAPER] delete object %s: %v", f.ClaimFileObjectKey, err)
			continue
		}
		if err := r.Repo.MarkFilePurged(ctx, f.ClaimFileID, now); err != nil {
			log.Printf("[REAPER] mark purged %s: %v", f.ClaimFileID, err)
			continue
		}
		purged++
	}
	if purged > 0 || len(files) > 0 {
		log.Printf("[REAPER] evidence purge: %d/%d object(s) removed", purged, len(files))
	}
	return purged, nil
}
