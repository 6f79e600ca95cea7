package masters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFilesDecode(t *testing.T) {
	var b []branchSeed
	require.NoError(t, readJSON("branches.json", &b))
	assert.Len(t, b, 7)
	assert.Equal(t, "BR001", b[0].Code)

	var cm []carModelSeed
	require.NoError(t, readJSON("car_models.json", &cm))
	assert.Len(t, cm, 10)

	var m []mileageSeed
	require.NoError(t, readJSON("mileages.json", &m))
	require.Len(t, m, 10)
	for i, row := range m {
		assert.Equal(t, i+1, row.SortOrder)
	}

	var v []vehicleSeed
	require.NoError(t, readJSON("vehicles.json", &v))
	assert.Len(t, v, 8)
	for _, row := range v {
		assert.GreaterOrEqual(t, len([]rune(row.RegisterNo)), 4, "register numbers must be findable by lookup")
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	var out []branchSeed
	assert.Error(t, readJSON("nope.json", &out))
}
