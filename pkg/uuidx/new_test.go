package uuidx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesV7(t *testing.T) {
	id := New()
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
	assert.NotEqual(t, id, New())
}

func TestNewIsTimeOrdered(t *testing.T) {
	// Version 7 ids carry a millisecond timestamp in their high bits, so ids
	// minted in sequence from one process sort in mint order.
	prev := New()
	for range 64 {
		next := New()
		assert.Equal(t, -1, bytes.Compare(prev[:], next[:]))
		prev = next
	}
}

func TestNewStringRoundTrips(t *testing.T) {
	raw := NewString()
	parsed, err := uuid.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, raw, parsed.String())
}

func TestNewStringIsCanonical(t *testing.T) {
	raw := NewString()
	assert.Len(t, raw, 36)
	assert.Equal(t, strings.ToLower(raw), raw)
}
