package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUTC(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts.UTC()
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustUTC(t, start), End: mustUTC(t, end)}
}

func TestOverlaps(t *testing.T) {
	base := iv(t, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", iv(t, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z"), true},
		{"contained", iv(t, "2025-03-01T10:15:00Z", "2025-03-01T10:45:00Z"), true},
		{"containing", iv(t, "2025-03-01T09:00:00Z", "2025-03-01T12:00:00Z"), true},
		{"partial overlap right", iv(t, "2025-03-01T10:30:00Z", "2025-03-01T11:30:00Z"), true},
		{"partial overlap left", iv(t, "2025-03-01T09:30:00Z", "2025-03-01T10:30:00Z"), true},
		{"adjacent after", iv(t, "2025-03-01T11:00:00Z", "2025-03-01T12:00:00Z"), false},
		{"adjacent before", iv(t, "2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"), false},
		{"disjoint", iv(t, "2025-03-01T13:00:00Z", "2025-03-01T14:00:00Z"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestParseInterval(t *testing.T) {
	t.Run("zulu suffix is UTC", func(t *testing.T) {
		got, err := ParseInterval("2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.UTC, got.Start.Location())
		assert.Equal(t, mustUTC(t, "2025-03-01T10:00:00Z"), got.Start)
	})

	t.Run("offset normalized to UTC", func(t *testing.T) {
		got, err := ParseInterval("2025-03-01T15:30:00+05:30", "2025-03-01T16:30:00+05:30")
		require.NoError(t, err)
		assert.Equal(t, mustUTC(t, "2025-03-01T10:00:00Z"), got.Start)
		assert.Equal(t, mustUTC(t, "2025-03-01T11:00:00Z"), got.End)
	})

	t.Run("zoneless treated as UTC", func(t *testing.T) {
		got, err := ParseInterval("2025-03-01T10:00:00", "2025-03-01T11:00:00")
		require.NoError(t, err)
		assert.Equal(t, mustUTC(t, "2025-03-01T10:00:00Z"), got.Start)
	})

	t.Run("unparseable start", func(t *testing.T) {
		_, err := ParseInterval("not-a-date", "2025-03-01T11:00:00Z")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("unparseable end", func(t *testing.T) {
		_, err := ParseInterval("2025-03-01T10:00:00Z", "eleven")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := ParseInterval("2025-03-01T10:00:00Z", "2025-03-01T10:00:00Z")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ParseInterval("2025-03-01T12:00:00Z", "2025-03-01T10:00:00Z")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestValidateHours(t *testing.T) {
	open, closeTime, err := ValidateHours("09:00", "22:00:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", open)
	assert.Equal(t, "22:00:00", closeTime)

	_, _, err = ValidateHours("22:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, _, err = ValidateHours("late", "22:00")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
