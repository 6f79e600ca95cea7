// Package scope builds the row predicate for claim reads: which claims the
// caller may see, narrowed by the request filters. Clauses are a closed set
// of types; storage layers translate them with an exhaustive type switch.
package scope

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"claimcenter_backend/internals/features/claims/model"
	"claimcenter_backend/internals/helpers/identity"
)

type Clause interface {
	// Match evaluates the clause against one claim in memory.
	Match(c *model.ClaimModel) bool
	clause()
}

// All matches every row.
type All struct{}

// Never matches nothing. Used for callers that must see an empty set.
type Never struct{}

// ActiveOnly drops soft-deleted claims.
type ActiveOnly struct{}

type StatusEquals struct{ Status model.ClaimStatus }

type BranchEquals struct{ BranchID uuid.UUID }

// DateRange bounds claim_date: From inclusive, To exclusive; nil is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// TextSearch is a case-insensitive substring match on claim number,
// customer name and car register.
type TextSearch struct{ Text string }

type AndClause struct{ Clauses []Clause }

func (All) clause()          {}
func (Never) clause()        {}
func (ActiveOnly) clause()   {}
func (StatusEquals) clause() {}
func (BranchEquals) clause() {}
func (DateRange) clause()    {}
func (TextSearch) clause()   {}
func (AndClause) clause()    {}

func (All) Match(*model.ClaimModel) bool   { return true }
func (Never) Match(*model.ClaimModel) bool { return false }

func (ActiveOnly) Match(c *model.ClaimModel) bool { return c.ClaimIsActive }

func (s StatusEquals) Match(c *model.ClaimModel) bool { return c.ClaimStatus == s.Status }

func (b BranchEquals) Match(c *model.ClaimModel) bool { return c.ClaimBranchID == b.BranchID }

func (d DateRange) Match(c *model.ClaimModel) bool {
	if d.From != nil && c.ClaimDate.Before(*d.From) {
		return false
	}
	if d.To != nil && !c.ClaimDate.Before(*d.To) {
		return false
	}
	return true
}

func (t TextSearch) Match(c *model.ClaimModel) bool {
	needle := strings.ToLower(strings.TrimSpace(t.Text))
	if needle == "" {
		return true
	}
	for _, hay := range []string{c.ClaimNo, c.ClaimCustomerName, c.ClaimCarRegister} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func (a AndClause) Match(c *model.ClaimModel) bool {
	for _, cl := range a.Clauses {
		if !cl.Match(c) {
			return false
		}
	}
	return true
}

// And flattens nested conjunctions, drops All, and collapses to Never
// as soon as one operand is Never.
func And(clauses ...Clause) Clause {
	out := make([]Clause, 0, len(clauses))
	for _, cl := range clauses {
		switch v := cl.(type) {
		case nil, All:
			continue
		case Never:
			return Never{}
		case AndClause:
			inner := And(v.Clauses...)
			switch iv := inner.(type) {
			case Never:
				return Never{}
			case AndClause:
				out = append(out, iv.Clauses...)
			case All:
			default:
				out = append(out, iv)
			}
		default:
			out = append(out, cl)
		}
	}
	switch len(out) {
	case 0:
		return All{}
	case 1:
		return out[0]
	}
	return AndClause{Clauses: out}
}

// ForIdentity is the branch restriction for a caller. requested is the
// branch filter from the request and only counts for ADMIN.
func ForIdentity(id identity.Context, requested *uuid.UUID) Clause {
	switch {
	case id.IsAdmin():
		if requested != nil && *requested != uuid.Nil {
			return BranchEquals{BranchID: *requested}
		}
		return All{}
	case id.IsServiceCenter() && id.HasBranch():
		return BranchEquals{BranchID: *id.BranchID}
	default:
		return Never{}
	}
}

// Filter is the user-supplied part of a claim query.
type Filter struct {
	Status   *model.ClaimStatus
	BranchID *uuid.UUID
	Search   string
	From     *time.Time
	To       *time.Time
}

// Build composes the full predicate: active rows, caller scope, filters.
func Build(id identity.Context, f Filter) Clause {
	clauses := []Clause{ActiveOnly{}, ForIdentity(id, f.BranchID)}
	if f.Status != nil {
		clauses = append(clauses, StatusEquals{Status: *f.Status})
	}
	if f.From != nil || f.To != nil {
		clauses = append(clauses, DateRange{From: f.From, To: f.To})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		clauses = append(clauses, TextSearch{Text: s})
	}
	return And(clauses...)
}
