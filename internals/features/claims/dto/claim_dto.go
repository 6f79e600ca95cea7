// file: internals/features/claims/dto/claim_dto.go
package dto

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"claimcenter_backend/internals/features/claims/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

/* =======================================================
   AMOUNT: menerima angka atau string ("1500.50")
   ======================================================= */

// Amount accepts a JSON number or a numeric string. Anything unparseable
// reads as zero.
type Amount struct {
	Decimal decimal.Decimal
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.TrimSpace(strings.Trim(s, `"`))
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d.Round(2)
	return nil
}

// MaxAmount is the largest value claim_amount (numeric(14,2)) can hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// amountProblem is the validation message for d, "" when d is acceptable.
func amountProblem(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "must not be negative"
	case d.GreaterThan(MaxAmount):
		return "must not exceed " + MaxAmount.StringFixed(2)
	}
	return ""
}

func NewAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{Decimal: decimal.Zero}
	}
	return Amount{Decimal: d.Round(2)}
}

/* =======================================================
   CREATE
   ======================================================= */

type CreateClaimRequest struct {
	CustomerName    string     `json:"customer_name" validate:"required,max=200"`
	CarModel        string     `json:"car_model" validate:"required,max=100"`
	CarRegister     string     `json:"car_register" validate:"required,max=50"`
	VinNo           *string    `json:"vin_no" validate:"omitempty,max=50"`
	ProjectType     *string    `json:"project_type" validate:"omitempty,max=100"`
	InventoryItemID *string    `json:"inventory_item_id" validate:"omitempty,max=100"`
	ClaimDetail     *string    `json:"claim_detail"`
	Amount          Amount     `json:"amount"`
	IsCheckMileage  bool       `json:"is_check_mileage"`
	Mileage         int        `json:"mileage" validate:"gte=0"`
	LastMileage     int        `json:"last_mileage" validate:"gte=0"`
	BranchID        *uuid.UUID `json:"branch_id"`
	SubmitNow       bool       `json:"submit_now"`
}

func (r *CreateClaimRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CarModel = strings.TrimSpace(r.CarModel)
	r.CarRegister = strings.TrimSpace(r.CarRegister)
	r.VinNo = trimOrNil(r.VinNo)
	r.ProjectType = trimOrNil(r.ProjectType)
	r.InventoryItemID = trimOrNil(r.InventoryItemID)
	r.ClaimDetail = trimOrNil(r.ClaimDetail)
	if r.BranchID != nil && *r.BranchID == uuid.Nil {
		r.BranchID = nil
	}
}

// Validate runs tag validation plus the amount range check.
func (r *CreateClaimRequest) Validate() error {
	fields := map[string][]string{}
	if err := helper.ValidateStruct(r); err != nil {
		var ae *apperror.Error
		if !errors.As(err, &ae) || ae.Fields == nil {
			return err
		}
		for k, v := range ae.Fields {
			fields[k] = append(fields[k], v...)
		}
	}
	if msg := amountProblem(r.Amount.Decimal); msg != "" {
		fields["amount"] = append(fields["amount"], msg)
	}
	if len(fields) > 0 {
		return apperror.ValidationFields(fields)
	}
	return nil
}

/* =======================================================
   PATCH (tri-state: absent | null | value)
   ======================================================= */

type PatchClaimRequest struct {
	CustomerName    helper.PatchField[string]    `json:"customer_name"`
	CarModel        helper.PatchField[string]    `json:"car_model"`
	CarRegister     helper.PatchField[string]    `json:"car_register"`
	VinNo           helper.PatchField[string]    `json:"vin_no"`
	ProjectType     helper.PatchField[string]    `json:"project_type"`
	InventoryItemID helper.PatchField[string]    `json:"inventory_item_id"`
	ClaimDetail     helper.PatchField[string]    `json:"claim_detail"`
	Amount          helper.PatchField[Amount]    `json:"amount"`
	IsCheckMileage  helper.PatchField[bool]      `json:"is_check_mileage"`
	Mileage         helper.PatchField[int]       `json:"mileage"`
	LastMileage     helper.PatchField[int]       `json:"last_mileage"`
	BranchID        helper.PatchField[uuid.UUID] `json:"branch_id"`
	SubmitNow       bool                         `json:"submit_now"`
}

func (p *PatchClaimRequest) Normalize() {
	for _, f := range []*helper.PatchField[string]{
		&p.CustomerName, &p.CarModel, &p.CarRegister,
		&p.VinNo, &p.ProjectType, &p.InventoryItemID, &p.ClaimDetail,
	} {
		if f.Value != nil {
			v := strings.TrimSpace(*f.Value)
			f.Value = &v
		}
	}
}

// Validate checks the patch on its own, before any claim is loaded.
func (p *PatchClaimRequest) Validate() error {
	fields := map[string][]string{}
	add := func(k, msg string) { fields[k] = append(fields[k], msg) }

	required := []struct {
		name string
		f    helper.PatchField[string]
		max  int
	}{
		{"customer_name", p.CustomerName, 200},
		{"car_model", p.CarModel, 100},
		{"car_register", p.CarRegister, 50},
	}
	for _, r := range required {
		if !r.f.Present {
			continue
		}
		if r.f.Value == nil || *r.f.Value == "" {
			add(r.name, "cannot be cleared")
			continue
		}
		if len([]rune(*r.f.Value)) > r.max {
			add(r.name, "too long")
		}
	}

	optional := []struct {
		name string
		f    helper.PatchField[string]
		max  int
	}{
		{"vin_no", p.VinNo, 50},
		{"project_type", p.ProjectType, 100},
		{"inventory_item_id", p.InventoryItemID, 100},
	}
	for _, o := range optional {
		if o.f.Value != nil && len([]rune(*o.f.Value)) > o.max {
			add(o.name, "too long")
		}
	}

	if p.Amount.Present {
		if p.Amount.Value == nil {
			add("amount", "cannot be null")
		} else if msg := amountProblem(p.Amount.Value.Decimal); msg != "" {
			add("amount", msg)
		}
	}
	if p.IsCheckMileage.IsNull() {
		add("is_check_mileage", "cannot be null")
	}
	for name, f := range map[string]helper.PatchField[int]{"mileage": p.Mileage, "last_mileage": p.LastMileage} {
		if f.IsNull() {
			add(name, "cannot be null")
		} else if f.Value != nil && *f.Value < 0 {
			add(name, "must not be negative")
		}
	}
	if p.BranchID.Present && (p.BranchID.Value == nil || *p.BranchID.Value == uuid.Nil) {
		add("branch_id", "cannot be cleared")
	}

	if len(fields) > 0 {
		return apperror.ValidationFields(fields)
	}
	return nil
}

// Apply writes the present fields onto c and returns the changed column
// names. branch_id is applied only when allowBranch is set.
func (p *PatchClaimRequest) Apply(c *model.ClaimModel, allowBranch bool) []string {
	var changed []string
	setStr := func(col string, dst *string, f helper.PatchField[string]) {
		if f.Present && f.Value != nil && *dst != *f.Value {
			*dst = *f.Value
			changed = append(changed, col)
		}
	}
	setOpt := func(col string, dst **string, f helper.PatchField[string]) {
		if !f.Present {
			return
		}
		next := trimOrNil(f.Value)
		if equalStrPtr(*dst, next) {
			return
		}
		*dst = next
		changed = append(changed, col)
	}
	setInt := func(col string, dst *int, f helper.PatchField[int]) {
		if f.Present && f.Value != nil && *dst != *f.Value {
			*dst = *f.Value
			changed = append(changed, col)
		}
	}

	setStr("claim_customer_name", &c.ClaimCustomerName, p.CustomerName)
	setStr("claim_car_model", &c.ClaimCarModel, p.CarModel)
	setStr("claim_car_register", &c.ClaimCarRegister, p.CarRegister)
	setOpt("claim_vin_no", &c.ClaimVinNo, p.VinNo)
	setOpt("claim_project_type", &c.ClaimProjectType, p.ProjectType)
	setOpt("claim_inventory_item_id", &c.ClaimInventoryItemID, p.InventoryItemID)
	setOpt("claim_detail", &c.ClaimDetail, p.ClaimDetail)

	if p.Amount.Present && p.Amount.Value != nil && !c.ClaimAmount.Equal(p.Amount.Value.Decimal) {
		c.ClaimAmount = p.Amount.Value.Decimal
		changed = append(changed, "claim_amount")
	}
	if p.IsCheckMileage.Present && p.IsCheckMileage.Value != nil && c.ClaimIsCheckMileage != *p.IsCheckMileage.Value {
		c.ClaimIsCheckMileage = *p.IsCheckMileage.Value
		changed = append(changed, "claim_is_check_mileage")
	}
	setInt("claim_mileage", &c.ClaimMileage, p.Mileage)
	setInt("claim_last_mileage", &c.ClaimLastMileage, p.LastMileage)

	if allowBranch && p.BranchID.Present && p.BranchID.Value != nil && c.ClaimBranchID != *p.BranchID.Value {
		c.ClaimBranchID = *p.BranchID.Value
		changed = append(changed, "claim_branch_id")
	}
	return changed
}

/* =======================================================
   DECISION (approve / reject / request-info)
   ======================================================= */

type DecisionRequest struct {
	Note *string `json:"note"`
}

/* =======================================================
   helpers
   ======================================================= */

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
