package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/features/claims/scope"
	"claimcenter_backend/internals/helpers/apperror"
	"claimcenter_backend/internals/helpers/dbtime"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ClaimListQuery is the raw query string of GET /api/claims (and export,
// stats). Values stay strings until ToFilter so bad input becomes a
// validation error instead of a silent default.
type ClaimListQuery struct {
	Status    string `query:"status"`
	BranchID  string `query:"branch_id"`
	Search    string `query:"search"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

func (q ClaimListQuery) ToFilter(loc *time.Location) (scope.Filter, error) {
	var f scope.Filter
	fields := map[string][]string{}

	if s := strings.TrimSpace(q.Status); s != "" {
		n, err := strconv.Atoi(s)
		st := model.ClaimStatus(n)
		if err != nil || n < 0 || !st.Valid() {
			fields["status"] = []string{"must be one of 0,1,2,3,4"}
		} else {
			f.Status = &st
		}
	}
	if s := strings.TrimSpace(q.BranchID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			fields["branch_id"] = []string{"must be a UUID"}
		} else {
			f.BranchID = &id
		}
	}
	f.Search = strings.TrimSpace(q.Search)

	if len(fields) > 0 {
		return scope.Filter{}, apperror.ValidationFields(fields)
	}

	from, to, err := dbtime.DayRange(q.StartDate, q.EndDate, loc)
	if err != nil {
		return scope.Filter{}, err
	}
	f.From, f.To = from, to
	return f, nil
}
