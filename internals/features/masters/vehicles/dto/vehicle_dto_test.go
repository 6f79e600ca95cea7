package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupQuery(t *testing.T) {
	q, ok := LookupQuery("  AB1  ")
	assert.False(t, ok)
	assert.Equal(t, "AB1", q)

	q, ok = LookupQuery(" ab12 ")
	assert.True(t, ok)
	assert.Equal(t, "ab12", q)

	_, ok = LookupQuery("กข12")
	assert.True(t, ok, "four Thai characters count as four")
}
