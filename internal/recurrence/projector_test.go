package recurrence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProject(t *testing.T) {
	t.Run("three installments of a round amount", func(t *testing.T) {
		occ, err := Project(7, date(2024, 1, 15), 3, decimal.RequireFromString("300.00"))
		require.NoError(t, err)
		require.Len(t, occ, 3)

		wantDates := []time.Time{date(2024, 1, 15), date(2024, 2, 15), date(2024, 3, 15)}
		for i, o := range occ {
			assert.Equal(t, int64(7), o.ParentID)
			assert.Equal(t, wantDates[i], o.Date)
			assert.Equal(t, "100.00", o.Amount.StringFixed(2))
			assert.Equal(t, i, o.Index)
			assert.Equal(t, 3, o.Total)
		}
		assert.Equal(t, "1/3", occ[0].Label)
		assert.Equal(t, "2/3", occ[1].Label)
		assert.Equal(t, "3/3", occ[2].Label)
	})

	t.Run("end of month clamps instead of rolling over", func(t *testing.T) {
		occ, err := Project(1, date(2024, 1, 31), 2, decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.Equal(t, date(2024, 2, 29), occ[1].Date)

		occ, err = Project(1, date(2023, 1, 31), 4, decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.Equal(t, date(2023, 2, 28), occ[1].Date)
		assert.Equal(t, date(2023, 3, 31), occ[2].Date)
		assert.Equal(t, date(2023, 4, 30), occ[3].Date)
	})

	t.Run("single installment", func(t *testing.T) {
		occ, err := Project(2, date(2024, 6, 1), 1, decimal.RequireFromString("42.10"))
		require.NoError(t, err)
		require.Len(t, occ, 1)
		assert.Equal(t, "1/1", occ[0].Label)
		assert.Equal(t, "42.10", occ[0].Amount.StringFixed(2))
	})

	t.Run("rejects installment counts outside 1..MaxInstallments", func(t *testing.T) {
		for _, n := range []int{0, -3, MaxInstallments + 1, 5_000_000} {
			_, err := Project(1, date(2024, 1, 1), n, decimal.NewFromInt(10))
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("rejects missing origin date", func(t *testing.T) {
		_, err := Project(1, time.Time{}, 2, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("is idempotent", func(t *testing.T) {
		a, err := Project(3, date(2024, 8, 30), 7, decimal.RequireFromString("1000.01"))
		require.NoError(t, err)
		b, err := Project(3, date(2024, 8, 30), 7, decimal.RequireFromString("1000.01"))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestProjectProperties(t *testing.T) {
	amounts := []string{"0.01", "10.00", "99.99", "100.00", "1234.56", "1000.01", "-45.67"}
	origins := []time.Time{date(2024, 1, 15), date(2024, 1, 31), date(2023, 12, 29), date(2025, 5, 1)}

	for _, a := range amounts {
		total := decimal.RequireFromString(a)
		for _, origin := range origins {
			for n := 1; n <= 24; n++ {
				occ, err := Project(1, origin, n, total)
				require.NoError(t, err)
				require.Len(t, occ, n)
				assert.Equal(t, origin, occ[0].Date)

				sum := decimal.Zero
				for i, o := range occ {
					sum = sum.Add(o.Amount)
					assert.True(t, MonthOf(origin).Add(i) == MonthOf(o.Date), "installment %d of %s lands in wrong month", i, origin)
				}
				assert.True(t, sum.Equal(total), "sum %s != %s for n=%d", sum, total, n)
			}
		}
	}
}

func TestInstallmentSeriesMatchesProject(t *testing.T) {
	amount := decimal.RequireFromString("1000.00")
	series, err := NewInstallments(4, date(2024, 1, 31), 7, amount)
	require.NoError(t, err)
	all, err := Project(4, date(2024, 1, 31), 7, amount)
	require.NoError(t, err)

	assert.Equal(t, all, series.All())
	for i, want := range all {
		got := series.In(MonthOf(date(2024, 1, 1)).Add(i))
		require.Len(t, got, 1)
		assert.Equal(t, want, got[0])
	}
	last, ok := series.Last()
	assert.True(t, ok)
	assert.Equal(t, Month{Year: 2024, Month: time.July}, last)

	_, err = NewInstallments(4, date(2024, 1, 31), MaxInstallments+1, amount)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSplit(t *testing.T) {
	parts, err := Split(decimal.NewFromInt(100), 3)
	require.NoError(t, err)
	assert.Equal(t, "33.34", parts[0].StringFixed(2))
	assert.Equal(t, "33.33", parts[1].StringFixed(2))
	assert.Equal(t, "33.33", parts[2].StringFixed(2))

	parts, err = Split(decimal.RequireFromString("10.005"), 2)
	require.NoError(t, err)
	assert.Equal(t, "5.01", parts[0].StringFixed(2))
	assert.Equal(t, "5.00", parts[1].StringFixed(2))

	_, err = Split(decimal.NewFromInt(1), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
