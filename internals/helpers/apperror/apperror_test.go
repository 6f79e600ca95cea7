package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"forbidden", Forbidden("nope"), KindForbidden},
		{"wrapped conflict", fmt.Errorf("approve: %w", Conflict("stale")), KindConflict},
		{"dependency", Dependency("db down", errors.New("dial tcp")), KindDependency},
		{"plain error", errors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFound("claim not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestDependencyUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Dependency("failed to load claim", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load claim: connection reset", err.Error())
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields(map[string][]string{"note": {"required"}})

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, []string{"required"}, err.Fields["note"])
}
