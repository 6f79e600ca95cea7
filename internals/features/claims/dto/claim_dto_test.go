package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimcenter_backend/internals/features/claims/model"
	helper "claimcenter_backend/internals/helpers"
	"claimcenter_backend/internals/helpers/apperror"
)

func TestAmountAcceptsNumberAndString(t *testing.T) {
	var body struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1500.5, "b": "2500.555", "c": "abc"}`), &body))
	assert.True(t, decimal.RequireFromString("1500.50").Equal(body.A.Decimal))
	assert.True(t, decimal.RequireFromString("2500.56").Equal(body.B.Decimal))
	assert.True(t, body.C.Decimal.IsZero())
}

func TestCreateValidate(t *testing.T) {
	var req CreateClaimRequest
	require.NoError(t, json.Unmarshal([]byte(`{"customer_name":"  ","car_model":"Vios","car_register":"AB1234","amount":"-5"}`), &req))
	req.Normalize()

	err := req.Validate()
	require.Error(t, err)
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Contains(t, ae.Fields, "customer_name")
	assert.Contains(t, ae.Fields, "amount")
}

func TestCreateNormalizeDropsBlankOptionals(t *testing.T) {
	var req CreateClaimRequest
	require.NoError(t, json.Unmarshal([]byte(`{"customer_name":" Somchai ","car_model":"Vios","car_register":"AB1234","vin_no":"  ","submit_now":true}`), &req))
	req.Normalize()

	assert.NoError(t, req.Validate())
	assert.Equal(t, "Somchai", req.CustomerName)
	assert.Nil(t, req.VinNo)
	assert.True(t, req.Amount.Decimal.IsZero(), "absent amount reads as zero")
	assert.True(t, req.SubmitNow)
}

func TestPatchDistinguishesOmittedFromNull(t *testing.T) {
	var p PatchClaimRequest
	require.NoError(t, json.Unmarshal([]byte(`{"vin_no": null, "amount": "99.90"}`), &p))
	p.Normalize()
	require.NoError(t, p.Validate())

	vin := "VIN123"
	detail := "leaking"
	c := &model.ClaimModel{
		ClaimCustomerName: "A",
		ClaimVinNo:        &vin,
		ClaimDetail:       &detail,
		ClaimAmount:       decimal.NewFromInt(10),
	}
	changed := p.Apply(c, false)

	assert.ElementsMatch(t, []string{"claim_vin_no", "claim_amount"}, changed)
	assert.Nil(t, c.ClaimVinNo, "explicit null clears")
	require.NotNil(t, c.ClaimDetail, "omitted field untouched")
	assert.Equal(t, "leaking", *c.ClaimDetail)
	assert.True(t, decimal.RequireFromString("99.90").Equal(c.ClaimAmount))
}

func TestPatchValidateRejectsClearingRequired(t *testing.T) {
	var p PatchClaimRequest
	require.NoError(t, json.Unmarshal([]byte(`{"customer_name": null, "car_register": "  ", "amount": null, "mileage": -1}`), &p))
	p.Normalize()

	err := p.Validate()
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "customer_name")
	assert.Contains(t, ae.Fields, "car_register")
	assert.Contains(t, ae.Fields, "amount")
	assert.Contains(t, ae.Fields, "mileage")
}

func TestPatchBranchOnlyWhenAllowed(t *testing.T) {
	target := uuid.New()
	var p PatchClaimRequest
	require.NoError(t, json.Unmarshal([]byte(`{"branch_id":"`+target.String()+`"}`), &p))

	own := uuid.New()
	c := &model.ClaimModel{ClaimBranchID: own}
	assert.Empty(t, p.Apply(c, false))
	assert.Equal(t, own, c.ClaimBranchID)

	assert.Equal(t, []string{"claim_branch_id"}, p.Apply(c, true))
	assert.Equal(t, target, c.ClaimBranchID)
}

func TestListQueryToFilter(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	branch := uuid.New()

	f, err := ClaimListQuery{Status: "1", BranchID: branch.String(), Search: " ab ", StartDate: "2026-01-01", EndDate: "2026-01-31"}.ToFilter(loc)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusPending, *f.Status)
	assert.Equal(t, branch, *f.BranchID)
	assert.Equal(t, "ab", f.Search)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), *f.From)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, loc), *f.To)

	_, err = ClaimListQuery{Status: "7"}.ToFilter(loc)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = ClaimListQuery{StartDate: "01/02/2026"}.ToFilter(loc)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	f, err = ClaimListQuery{}.ToFilter(loc)
	require.NoError(t, err)
	assert.Nil(t, f.Status)
	assert.Nil(t, f.From)
}

func TestAmountUpperBound(t *testing.T) {
	base := CreateClaimRequest{CustomerName: "Somchai", CarModel: "Vios", CarRegister: "AB1234"}

	cases := []struct {
		amount string
		ok     bool
	}{
		{"999999999999.99", true},
		{"1000000000000", false},
		{"100000000000000000000", false},
		{"999999999999.995", false}, // rounds up past the column limit
	}
	for _, tc := range cases {
		req := base
		req.Amount = NewAmount(tc.amount)
		err := req.Validate()

		patch := PatchClaimRequest{Amount: helper.Set(NewAmount(tc.amount))}
		perr := patch.Validate()

		if tc.ok {
			assert.NoError(t, err, tc.amount)
			assert.NoError(t, perr, tc.amount)
			continue
		}
		var ae *apperror.Error
		require.ErrorAs(t, err, &ae, tc.amount)
		assert.Equal(t, apperror.KindValidation, ae.Kind)
		assert.Contains(t, ae.Fields, "amount")

		require.ErrorAs(t, perr, &ae, tc.amount)
		assert.Contains(t, ae.Fields, "amount")
	}
}
