package recurrence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMonth(t *testing.T, s string) Month {
	t.Helper()
	m, err := ParseMonth(s)
	require.NoError(t, err)
	return m
}

func TestSelectForMonth_Installments(t *testing.T) {
	s, err := NewInstallments(1, date(2024, 1, 15), 3, decimal.RequireFromString("300.00"))
	require.NoError(t, err)

	march := mustMonth(t, "2024-03")
	got := SelectForMonth(s, &march)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, 3, 15), got[0].Date)
	assert.Equal(t, "3/3", got[0].Label)
	assert.Equal(t, "100.00", got[0].Amount.StringFixed(2))

	april := mustMonth(t, "2024-04")
	assert.Empty(t, SelectForMonth(s, &april))

	assert.Len(t, SelectForMonth(s, nil), 3)
}

func TestForwardCoverage(t *testing.T) {
	origin := date(2024, 1, 20)
	for n := 1; n <= 12; n++ {
		s, err := NewInstallments(1, origin, n, decimal.NewFromInt(120))
		require.NoError(t, err)

		start := MonthOf(origin)
		for offset := -3; offset < n+3; offset++ {
			m := start.Add(offset)
			inRange := offset >= 0 && offset <= n-1
			assert.Equal(t, inRange, Covers(s, m), "n=%d month=%s", n, m)

			got := SelectForMonth(s, &m)
			if inRange {
				require.Len(t, got, 1, "n=%d month=%s", n, m)
				assert.True(t, Matches(got[0].Date, &m))
			} else {
				assert.Empty(t, got, "n=%d month=%s", n, m)
			}
		}
	}
}

func TestMonthlyRecurring(t *testing.T) {
	s, err := NewMonthlyRecurring(9, date(2024, 5, 10), 10, decimal.RequireFromString("89.90"))
	require.NoError(t, err)

	july := mustMonth(t, "2024-07")
	got := SelectForMonth(s, &july)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, 7, 10), got[0].Date)
	assert.Equal(t, int64(9), got[0].ParentID)

	may := mustMonth(t, "2024-05")
	got = SelectForMonth(s, &may)
	require.Len(t, got, 1)
	assert.Equal(t, date(2024, 5, 10), got[0].Date)

	april := mustMonth(t, "2024-04")
	assert.Empty(t, SelectForMonth(s, &april))

	assert.Len(t, SelectForMonth(s, nil), 1)

	t.Run("day clamps to short months", func(t *testing.T) {
		s, err := NewMonthlyRecurring(1, date(2024, 1, 31), 31, decimal.NewFromInt(1))
		require.NoError(t, err)
		feb := mustMonth(t, "2025-02")
		got := SelectForMonth(s, &feb)
		require.Len(t, got, 1)
		assert.Equal(t, date(2025, 2, 28), got[0].Date)
	})

	t.Run("rejects days outside 1..31", func(t *testing.T) {
		_, err := NewMonthlyRecurring(1, date(2024, 1, 1), 32, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = NewMonthlyRecurring(1, date(2024, 1, 1), 0, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestFixedOccurrence(t *testing.T) {
	s, err := NewFixed(4, date(2024, 2, 5), decimal.NewFromInt(3000))
	require.NoError(t, err)

	feb := mustMonth(t, "2024-02")
	mar := mustMonth(t, "2024-03")
	assert.Len(t, SelectForMonth(s, &feb), 1)
	assert.Empty(t, SelectForMonth(s, &mar))
	assert.Len(t, SelectForMonth(s, nil), 1)

	_, err = NewFixed(4, time.Time{}, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExpandKeepsRecordThenInstallmentOrder(t *testing.T) {
	a, err := NewInstallments(1, date(2024, 1, 1), 2, decimal.NewFromInt(20))
	require.NoError(t, err)
	b, err := NewFixed(2, date(2024, 1, 5), decimal.NewFromInt(5))
	require.NoError(t, err)
	c, err := NewInstallments(3, date(2023, 12, 1), 3, decimal.NewFromInt(30))
	require.NoError(t, err)

	all := Expand([]Schedule{a, b, c}, nil)
	var ids []int64
	var labels []string
	for _, o := range all {
		ids = append(ids, o.ParentID)
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []int64{1, 1, 2, 3, 3, 3}, ids)
	assert.Equal(t, []string{"1/2", "2/2", "1/1", "1/3", "2/3", "3/3"}, labels)

	jan := mustMonth(t, "2024-01")
	got := Expand([]Schedule{a, b, c}, &jan)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].ParentID, got[1].ParentID, got[2].ParentID})
	assert.Equal(t, "2/3", got[2].Label)
}

func TestMatches(t *testing.T) {
	m := mustMonth(t, "2024-03")
	assert.True(t, Matches(date(2024, 3, 1), &m))
	assert.True(t, Matches(date(2024, 3, 31), &m))
	assert.False(t, Matches(date(2023, 3, 15), &m))
	assert.True(t, Matches(date(1999, 1, 1), nil))
}
