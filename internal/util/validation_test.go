package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPeriodKey(t *testing.T) {
	cases := map[string]bool{
		"":    true,
		"all": true,
		"2024-01-01T00:00:00Z_2024-07-01T00:00:00Z": true,
		"2024-07-01T00:00:00Z_2024-01-01T00:00:00Z": false,
		"2024-01-01T00:00:00Z":                      false,
		"2024-01-01_2024-07-01":                     false,
		"a_b_c":                                     false,
	}
	for key, want := range cases {
		assert.Equal(t, want, ValidPeriodKey(key), "key %q", key)
	}
}

func TestParsePeriodBounds(t *testing.T) {
	start, end, allTime, err := ParsePeriodBounds("2024-01-01T02:00:00+02:00_2024-07-01T00:00:00Z")
	require.NoError(t, err)
	assert.False(t, allTime)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, allTime, err = ParsePeriodBounds(AllTimeKey)
	require.NoError(t, err)
	assert.True(t, allTime)

	_, _, _, err = ParsePeriodBounds("2024-01-01T00:00:00Z_bad_key")
	assert.ErrorIs(t, err, ErrInvalidPeriodKey)
}

func TestRegisterValidatorsIsIdempotent(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators())
}

func TestErrorTaxonomy(t *testing.T) {
	ve := NewValidationError("userId", "is required")
	assert.Equal(t, "userId: is required", ve.Error())
	assert.True(t, IsValidationError(ve))
	assert.False(t, IsPersistenceError(ve))

	pe := NewPersistenceError("insert response", ErrUnknownQuestionType)
	assert.True(t, IsPersistenceError(pe))
	assert.ErrorIs(t, pe, ErrUnknownQuestionType)
}
