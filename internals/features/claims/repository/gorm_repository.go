package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/scope"
	helper "claimcenter_backend/internals/helpers"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

/* ====================== CLAIMS ====================== */

func (r *GormRepository) LastClaimNo(ctx context.Context, prefix string) (string, error) {
	var nos []string
	err := r.db.WithContext(ctx).
		Model(&model.ClaimModel{}).
		Where("claim_no LIKE ?", helper.EscapeLike(prefix)+"%").
		Order("claim_no DESC").
		Limit(1).
		Pluck("claim_no", &nos).Error
	if err != nil {
		return "", err
	}
	if len(nos) == 0 {
		return "", nil
	}
	return nos[0], nil
}

func (r *GormRepository) CreateClaim(ctx context.Context, c *model.ClaimModel) error {
	err := r.db.WithContext(ctx).Omit("Branch", "Creator", "Files", "Logs").Create(c).Error
	if helper.IsUniqueViolation(err) {
		return ErrDuplicateClaimNo
	}
	if helper.IsForeignKeyViolation(err) {
		return ErrUnknownReference
	}
	return err
}

func (r *GormRepository) FindClaim(ctx context.Context, id uuid.UUID) (*model.ClaimModel, error) {
	var c model.ClaimModel
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("Creator").
		Where("claim_id = ? AND claim_is_active = ?", id, true).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepository) UpdateClaimIfStatus(ctx context.Context, next *model.ClaimModel, expected model.ClaimStatus, cols []string) (bool, error) {
	values, err := pickColumns(next, cols)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).
		Model(&model.ClaimModel{}).
		Where("claim_id = ? AND claim_status = ? AND claim_is_active = ?", next.ClaimID, expected, true).
		Updates(values)
	if res.Error != nil {
		if helper.IsForeignKeyViolation(res.Error) {
			return false, ErrUnknownReference
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepository) ListClaims(ctx context.Context, where scope.Clause, page Page) ([]model.ClaimModel, int64, error) {
	base := applyClause(r.db.WithContext(ctx).Model(&model.ClaimModel{}), where)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{}).
		Preload("Branch").
		Order("claim_date DESC").
		Order("claim_no DESC")
	if page.Limit > 0 {
		q = q.Limit(page.Limit).Offset(page.Offset)
	}

	var rows []model.ClaimModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepository) CountByStatus(ctx context.Context, where scope.Clause) (map[model.ClaimStatus]int64, error) {
	var rows []struct {
		Status int16
		Total  int64
	}
	err := applyClause(r.db.WithContext(ctx).Model(&model.ClaimModel{}), where).
		Select("claim_status AS status, COUNT(*) AS total").
		Group("claim_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.ClaimStatus]int64, len(rows))
	for _, row := range rows {
		out[model.ClaimStatus(row.Status)] = row.Total
	}
	return out, nil
}

/* ====================== LOGS ====================== */

func (r *GormRepository) AppendLog(ctx context.Context, log *model.ClaimLogModel) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormRepository) ListLogs(ctx context.Context, claimID uuid.UUID) ([]model.ClaimLogModel, error) {
	var logs []model.ClaimLogModel
	err := r.db.WithContext(ctx).
		Where("claim_log_claim_id = ?", claimID).
		Order("claim_log_action_date DESC").
		Find(&logs).Error
	return logs, err
}

/* ====================== FILES ====================== */

func (r *GormRepository) CreateFile(ctx context.Context, f *model.ClaimFileModel) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *GormRepository) FindFile(ctx context.Context, claimID, fileID uuid.UUID) (*model.ClaimFileModel, error) {
	var f model.ClaimFileModel
	err := r.db.WithContext(ctx).
		Where("claim_file_id = ? AND claim_file_claim_id = ? AND claim_file_is_active = ?", fileID, claimID, true).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormRepository) ListFiles(ctx context.Context, claimID uuid.UUID) ([]model.ClaimFileModel, error) {
	var files []model.ClaimFileModel
	err := r.db.WithContext(ctx).
		Where("claim_file_claim_id = ? AND claim_file_is_active = ?", claimID, true).
		Order("claim_file_create_date DESC").
		Find(&files).Error
	return files, err
}

func (r *GormRepository) SoftDeleteFile(ctx context.Context, fileID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.ClaimFileModel{}).
		Where("claim_file_id = ? AND claim_file_is_active = ?", fileID, true).
		Updates(map[string]any{
			"claim_file_is_active":  false,
			"claim_file_deleted_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) ListPurgeableFiles(ctx context.Context, cutoff time.Time, limit int) ([]model.ClaimFileModel, error) {
	var files []model.ClaimFileModel
	q := r.db.WithContext(ctx).
		Where("claim_file_is_active = ? AND claim_file_purged_at IS NULL AND claim_file_deleted_at < ?", false, cutoff).
		Order("claim_file_deleted_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&files).Error
	return files, err
}

func (r *GormRepository) MarkFilePurged(ctx context.Context, fileID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ClaimFileModel{}).
		Where("claim_file_id = ?", fileID).
		Update("claim_file_purged_at", at).Error
}

/* ====================== helpers ====================== */

// applyClause translates a scope predicate into WHERE conditions.
func applyClause(db *gorm.DB, c scope.Clause) *gorm.DB {
	switch v := c.(type) {
	case nil, scope.All:
		return db
	case scope.Never:
		return db.Where("1 = 0")
	case scope.ActiveOnly:
		return db.Where("claims.claim_is_active = ?", true)
	case scope.StatusEquals:
		return db.Where("claims.claim_status = ?", v.Status)
	case scope.BranchEquals:
		return db.Where("claims.claim_branch_id = ?", v.BranchID)
	case scope.DateRange:
		if v.From != nil {
			db = db.Where("claims.claim_date >= ?", *v.From)
		}
		if v.To != nil {
			db = db.Where("claims.claim_date < ?", *v.To)
		}
		return db
	case scope.TextSearch:
		text := strings.TrimSpace(v.Text)
		if text == "" {
			return db
		}
		p := "%" + helper.EscapeLike(text) + "%"
		return db.Where("(claims.claim_no ILIKE ? OR claims.claim_customer_name ILIKE ? OR claims.claim_car_register ILIKE ?)", p, p, p)
	case scope.AndClause:
		for _, inner := range v.Clauses {
			db = applyClause(db, inner)
		}
		return db
	default:
		_ = db.AddError(fmt.Errorf("unsupported claim clause %T", c))
		return db
	}
}
