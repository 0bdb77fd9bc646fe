package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-11")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.November}, m)
	assert.Equal(t, "2024-11", m.String())

	for _, bad := range []string{"", "2024-13", "11/2024", "2024-1x"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestNewMonth(t *testing.T) {
	m, err := NewMonth(2024, 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-07", m.String())

	_, err = NewMonth(2024, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewMonth(2024, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMonthArithmetic(t *testing.T) {
	dec := Month{Year: 2023, Month: time.December}
	assert.Equal(t, Month{Year: 2024, Month: time.January}, dec.Add(1))
	assert.Equal(t, Month{Year: 2024, Month: time.December}, dec.Add(12))
	assert.Equal(t, Month{Year: 2023, Month: time.November}, dec.Add(-1))
	assert.Equal(t, 13, Month{Year: 2025, Month: time.January}.Since(dec))
	assert.True(t, dec.Before(dec.Add(1)))
	assert.True(t, dec.Add(1).After(dec))

	feb := Month{Year: 2024, Month: time.February}
	assert.Equal(t, 29, feb.Days())
	assert.Equal(t, date(2024, 2, 29), feb.End())
	assert.Equal(t, date(2024, 2, 1), feb.Start())
	assert.Equal(t, date(2024, 2, 29), feb.DayIn(31))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), AddMonths(date(2024, 1, 31), 1))
	assert.Equal(t, date(2025, 2, 28), AddMonths(date(2024, 2, 29), 12))
	assert.Equal(t, date(2024, 12, 15), AddMonths(date(2024, 1, 15), 11))
	assert.Equal(t, date(2023, 11, 30), AddMonths(date(2024, 3, 31), -4))
	assert.Equal(t, date(2024, 1, 31), AddMonths(date(2024, 1, 31), 0))
}
