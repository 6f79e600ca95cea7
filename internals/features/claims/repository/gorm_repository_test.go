package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/scope"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestLastClaimNo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectQuery(`SELECT .*claim_no.* FROM "claims" WHERE claim_no LIKE .* ORDER BY claim_no DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"claim_no"}).AddRow("CLM-2026-0041"))

	last, err := repo.LastClaimNo(context.Background(), "CLM-2026-")
	require.NoError(t, err)
	assert.Equal(t, "CLM-2026-0041", last)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastClaimNoEmptyYear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectQuery(`FROM "claims" WHERE claim_no LIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"claim_no"}))

	last, err := repo.LastClaimNo(context.Background(), "CLM-2027-")
	require.NoError(t, err)
	assert.Equal(t, "", last)
}

func TestUpdateClaimIfStatusMatchesExpectedStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)
	c := &model.ClaimModel{ClaimID: uuid.New(), ClaimStatus: model.ClaimStatusApproved, ClaimIsActive: true}

	casSQL := `UPDATE "claims" SET .+ WHERE \(?claim_id = \$\d+ AND claim_status = \$\d+ AND claim_is_active = \$\d+\)?`

	mock.ExpectExec(casSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.UpdateClaimIfStatus(context.Background(), c, model.ClaimStatusPending, DecisionColumns(true))
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(casSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.UpdateClaimIfStatus(context.Background(), c, model.ClaimStatusPending, DecisionColumns(true))
	require.NoError(t, err)
	assert.False(t, ok, "a concurrent writer already moved the claim")

	mock.ExpectExec(casSQL).WillReturnError(fmt.Errorf("connection reset"))
	_, err = repo.UpdateClaimIfStatus(context.Background(), c, model.ClaimStatusPending, DecisionColumns(true))
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClaimIfStatusWritesOnlyNamedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	by := uuid.New()
	c := &model.ClaimModel{ClaimID: uuid.New(), ClaimCarModel: "stale", ClaimUpdateBy: &by, ClaimUpdateDate: &now}

	mock.ExpectExec(`UPDATE "claims" SET "claim_is_active"=\$1,"claim_update_by"=\$2,"claim_update_date"=\$3 WHERE`).
		WithArgs(false, by, now, c.ClaimID, model.ClaimStatusDraft, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateClaimIfStatus(context.Background(), c, model.ClaimStatusDraft, DeleteColumns)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClaimIfStatusRejectsBadColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)
	c := &model.ClaimModel{ClaimID: uuid.New()}

	for _, cols := range [][]string{nil, {"claim_no"}, {"claim_status", "claim_create_by"}} {
		_, err := repo.UpdateClaimIfStatus(context.Background(), c, model.ClaimStatusDraft, cols)
		assert.Error(t, err, "%v", cols)
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing reaches the database")
}

func TestCopyColumnCoversWritableColumns(t *testing.T) {
	for col := range claimColumns(&model.ClaimModel{}) {
		assert.Contains(t, copyColumn, col)
	}
	assert.Len(t, copyColumn, len(claimColumns(&model.ClaimModel{})))
}

func TestCountByStatusGroupsOnce(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)
	branch := uuid.New()

	mock.ExpectQuery(`SELECT claim_status AS status, COUNT\(\*\) AS total FROM "claims" WHERE .*claim_branch_id.* GROUP BY "?claim_status"?`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).
			AddRow(0, 2).
			AddRow(1, 5).
			AddRow(2, 1))

	counts, err := repo.CountByStatus(context.Background(), scope.And(scope.ActiveOnly{}, scope.BranchEquals{BranchID: branch}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.ClaimStatusDraft])
	assert.Equal(t, int64(5), counts[model.ClaimStatusPending])
	assert.Equal(t, int64(1), counts[model.ClaimStatusApproved])
	assert.Zero(t, counts[model.ClaimStatusRejected])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClaimsNeverScopeQueriesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "claims" WHERE 1 = 0`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "claims" WHERE 1 = 0 ORDER BY claim_date DESC,\s?claim_no DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"claim_id"}))

	rows, total, err := repo.ListClaims(context.Background(), scope.Never{}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyClauseTranslation(t *testing.T) {
	db, _ := newMockDB(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	where := scope.And(
		scope.ActiveOnly{},
		scope.StatusEquals{Status: model.ClaimStatusPending},
		scope.DateRange{From: &from, To: &to},
		scope.TextSearch{Text: "50%_off"},
	)
	stmt := applyClause(db.Session(&gorm.Session{DryRun: true}).Model(&model.ClaimModel{}), where).
		Find(&[]model.ClaimModel{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "claims.claim_is_active = $1")
	assert.Contains(t, sql, "claims.claim_status = $2")
	assert.Contains(t, sql, "claims.claim_date >= $3")
	assert.Contains(t, sql, "claims.claim_date < $4")
	assert.Contains(t, sql, "claims.claim_no ILIKE $5")
	assert.Equal(t, `%50\%\_off%`, stmt.Vars[4])
}
