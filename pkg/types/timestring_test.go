package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)
	assert.Equal(t, "10:30", ts.String())

	for _, bad := range []string{"", "10", "25:00", "10:61", "10-30", "10:30:00"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestIsBeforeIsAfter(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("21:00"))
	assert.False(t, TimeString("21:00").IsBefore("09:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))

	assert.True(t, TimeString("21:00").IsAfter("09:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Некорректные значения не упорядочены
	assert.False(t, TimeString("garbage").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("garbage"))
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("21:30:00")))
	assert.Equal(t, TimeString("21:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)
}
