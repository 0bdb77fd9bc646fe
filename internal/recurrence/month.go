package recurrence

import (
	"fmt"
	"time"
)

// Month identifies a calendar month independent of day and time.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a month in YYYY-MM form.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidInput, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// NewMonth builds a Month from a year and a 1-12 month number.
func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return Month{}, fmt.Errorf("%w: month %04d-%02d out of range", ErrInvalidInput, year, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// MonthOf returns the month a date falls in.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ordinal counts months since year zero so months compare as integers.
func (m Month) ordinal() int {
	return m.Year*12 + int(m.Month) - 1
}

// Add advances the month by n (negative n moves backwards).
func (m Month) Add(n int) Month {
	o := m.ordinal() + n
	return Month{Year: o / 12, Month: time.Month(o%12 + 1)}
}

// Since returns how many months m is after other.
func (m Month) Since(other Month) int {
	return m.ordinal() - other.ordinal()
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	return m.ordinal() < other.ordinal()
}

// After reports whether m is strictly later than other.
func (m Month) After(other Month) bool {
	return m.ordinal() > other.ordinal()
}

// Start returns the first day of the month at midnight UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month at midnight UTC.
func (m Month) End() time.Time {
	return time.Date(m.Year, m.Month, m.Days(), 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// DayIn returns the given day of this month, clamped to the month's last day.
func (m Month) DayIn(day int) time.Time {
	if last := m.Days(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances t by n calendar months keeping its day of month.
// When the day does not exist in the target month it is clamped to the
// target month's last day: 2024-01-31 + 1 month is 2024-02-29.
func AddMonths(t time.Time, n int) time.Time {
	target := MonthOf(t).Add(n)
	day := t.Day()
	if last := target.Days(); day > last {
		day = last
	}
	return time.Date(target.Year, target.Month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
