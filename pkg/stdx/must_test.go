package stdx

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errStoreDown = errors.New("audit store unreachable")

func TestMust0(t *testing.T) {
	t.Run("nil error passes", func(t *testing.T) {
		assert.NotPanics(t, func() { Must0(nil) })
	})

	t.Run("panics with the original error", func(t *testing.T) {
		assert.PanicsWithError(t, "audit store unreachable", func() {
			Must0(errStoreDown)
		})
	})
}

func TestMust1(t *testing.T) {
	t.Run("returns the value", func(t *testing.T) {
		rate := Must1(strconv.ParseFloat("4.99", 64))
		assert.Equal(t, 4.99, rate)
	})

	t.Run("panics with the original error", func(t *testing.T) {
		assert.PanicsWithError(t, "audit store unreachable", func() {
			Must1(0.0, errStoreDown)
		})
	})

	t.Run("wrapped errors keep their message", func(t *testing.T) {
		wrapped := fmt.Errorf("registering shipping hooks: %w", errStoreDown)
		assert.PanicsWithError(t, "registering shipping hooks: audit store unreachable", func() {
			Must1("unused", wrapped)
		})
	})
}
