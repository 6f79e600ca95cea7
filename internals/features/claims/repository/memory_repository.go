package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/scope"
	branchModel "claimcenter_backend/internals/features/masters/branches/model"
)

// MemoryRepository keeps everything in maps. Transactions are serialized
// and roll back by restoring a snapshot; reads outside a transaction are
// not isolated from one in progress.
type MemoryRepository struct {
	mu   sync.Mutex
	txMu *sync.Mutex

	claims   map[uuid.UUID]model.ClaimModel
	logs     []model.ClaimLogModel
	files    map[uuid.UUID]model.ClaimFileModel
	branches map[uuid.UUID]branchModel.BranchModel
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		txMu:     &sync.Mutex{},
		claims:   map[uuid.UUID]model.ClaimModel{},
		files:    map[uuid.UUID]model.ClaimFileModel{},
		branches: map[uuid.UUID]branchModel.BranchModel{},
	}
}

// PutBranch registers a branch so reads can attach it like a preload.
func (r *MemoryRepository) PutBranch(b branchModel.BranchModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches[b.BranchID] = b
}

type memSnapshot struct {
	claims map[uuid.UUID]model.ClaimModel
	logs   []model.ClaimLogModel
	files  map[uuid.UUID]model.ClaimFileModel
}

func (r *MemoryRepository) snapshot() memSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := memSnapshot{
		claims: make(map[uuid.UUID]model.ClaimModel, len(r.claims)),
		logs:   append([]model.ClaimLogModel(nil), r.logs...),
		files:  make(map[uuid.UUID]model.ClaimFileModel, len(r.files)),
	}
	for k, v := range r.claims {
		s.claims[k] = v
	}
	for k, v := range r.files {
		s.files[k] = v
	}
	return s
}

func (r *MemoryRepository) restore(s memSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims, r.logs, r.files = s.claims, s.logs, s.files
}

func (r *MemoryRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

/* ====================== CLAIMS ====================== */

func (r *MemoryRepository) LastClaimNo(_ context.Context, prefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := ""
	for _, c := range r.claims {
		if strings.HasPrefix(c.ClaimNo, prefix) && c.ClaimNo > last {
			last = c.ClaimNo
		}
	}
	return last, nil
}

func (r *MemoryRepository) CreateClaim(_ context.Context, c *model.ClaimModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.claims {
		if existing.ClaimNo == c.ClaimNo {
			return ErrDuplicateClaimNo
		}
	}
	if c.ClaimID == uuid.Nil {
		c.ClaimID = uuid.New()
	}
	r.claims[c.ClaimID] = c.Clone()
	return nil
}

func (r *MemoryRepository) FindClaim(_ context.Context, id uuid.UUID) (*model.ClaimModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok || !c.ClaimIsActive {
		return nil, ErrNotFound
	}
	out := r.withBranch(c)
	return &out, nil
}

func (r *MemoryRepository) UpdateClaimIfStatus(_ context.Context, next *model.ClaimModel, expected model.ClaimStatus, cols []string) (bool, error) {
	if _, err := pickColumns(next, cols); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.claims[next.ClaimID]
	if !ok || !cur.ClaimIsActive || cur.ClaimStatus != expected {
		return false, nil
	}
	upd := cur.Clone()
	for _, col := range cols {
		copyColumn[col](&upd, next)
	}
	r.claims[next.ClaimID] = upd
	return true, nil
}

func (r *MemoryRepository) ListClaims(_ context.Context, where scope.Clause, page Page) ([]model.ClaimModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.match(where)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ClaimDate.Equal(matched[j].ClaimDate) {
			return matched[i].ClaimDate.After(matched[j].ClaimDate)
		}
		return matched[i].ClaimNo > matched[j].ClaimNo
	})
	total := int64(len(matched))
	if page.Limit > 0 {
		start := min(page.Offset, len(matched))
		end := min(start+page.Limit, len(matched))
		matched = matched[start:end]
	}
	out := make([]model.ClaimModel, 0, len(matched))
	for _, c := range matched {
		out = append(out, r.withBranch(c))
	}
	return out, total, nil
}

func (r *MemoryRepository) CountByStatus(_ context.Context, where scope.Clause) (map[model.ClaimStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[model.ClaimStatus]int64{}
	for _, c := range r.match(where) {
		out[c.ClaimStatus]++
	}
	return out, nil
}

func (r *MemoryRepository) match(where scope.Clause) []model.ClaimModel {
	if where == nil {
		where = scope.All{}
	}
	var out []model.ClaimModel
	for _, c := range r.claims {
		c := c
		if where.Match(&c) {
			out = append(out, c)
		}
	}
	return out
}

func (r *MemoryRepository) withBranch(c model.ClaimModel) model.ClaimModel {
	if b, ok := r.branches[c.ClaimBranchID]; ok {
		c.Branch = &b
	}
	return c
}

/* ====================== LOGS ====================== */

func (r *MemoryRepository) AppendLog(_ context.Context, log *model.ClaimLogModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[log.ClaimLogClaimID]; !ok {
		return ErrOrphanLog
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *MemoryRepository) ListLogs(_ context.Context, claimID uuid.UUID) ([]model.ClaimLogModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ClaimLogModel
	for _, l := range r.logs {
		if l.ClaimLogClaimID == claimID {
			out = append(out, l)
		}
	}
	// Newest first; entries sharing a timestamp come back in reverse append order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClaimLogActionDate.After(out[j].ClaimLogActionDate)
	})
	return out, nil
}

/* ====================== FILES ====================== */

func (r *MemoryRepository) CreateFile(_ context.Context, f *model.ClaimFileModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[f.ClaimFileClaimID]; !ok {
		return ErrNotFound
	}
	if f.ClaimFileID == uuid.Nil {
		f.ClaimFileID = uuid.New()
	}
	r.files[f.ClaimFileID] = *f
	return nil
}

func (r *MemoryRepository) FindFile(_ context.Context, claimID, fileID uuid.UUID) (*model.ClaimFileModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[fileID]
	if !ok || f.ClaimFileClaimID != claimID || !f.ClaimFileIsActive {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *MemoryRepository) ListFiles(_ context.Context, claimID uuid.UUID) ([]model.ClaimFileModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ClaimFileModel
	for _, f := range r.files {
		if f.ClaimFileClaimID == claimID && f.ClaimFileIsActive {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClaimFileCreateDate.After(out[j].ClaimFileCreateDate)
	})
	return out, nil
}

func (r *MemoryRepository) SoftDeleteFile(_ context.Context, fileID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[fileID]
	if !ok || !f.ClaimFileIsActive {
		return ErrNotFound
	}
	f.ClaimFileIsActive = false
	f.ClaimFileDeletedAt = &at
	r.files[fileID] = f
	return nil
}

func (r *MemoryRepository) ListPurgeableFiles(_ context.Context, cutoff time.Time, limit int) ([]model.ClaimFileModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ClaimFileModel
	for _, f := range r.files {
		if !f.ClaimFileIsActive && f.ClaimFilePurgedAt == nil && f.ClaimFileDeletedAt != nil && f.ClaimFileDeletedAt.Before(cutoff) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClaimFileDeletedAt.Before(*out[j].ClaimFileDeletedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) MarkFilePurged(_ context.Context, fileID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[fileID]
	if !ok {
		return ErrNotFound
	}
	f.ClaimFilePurgedAt = &at
	r.files[fileID] = f
	return nil
}
