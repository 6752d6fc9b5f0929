package uuidx

import (
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
	assert.NotEqual(t, id, New())
}

func TestNewString(t *testing.T) {
	raw := NewString()
	id, err := uuid.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Regexp(t, "^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$", raw)
}

func TestNewStringSortsByCreation(t *testing.T) {
	ids := make([]string, 64)
	for i := range ids {
		ids[i] = NewString()
	}
	assert.True(t, slices.IsSorted(ids))
	assert.Len(t, slices.Compact(slices.Clone(ids)), len(ids))
}
