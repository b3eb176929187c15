package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClock(t *testing.T) {
	valid := []string{"00:00", "9:30", "09:30", "23:59", "14:00"}
	for _, s := range valid {
		assert.True(t, IsClock(s), s)
	}

	invalid := []string{"", "24:00", "12:60", "1200", "12:5", "ab:cd", "12:00:00"}
	for _, s := range invalid {
		assert.False(t, IsClock(s), s)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
