package recurrence

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Schedule describes when a stored record manifests.
type Schedule interface {
	// First is the month of the earliest occurrence.
	First() Month
	// Last is the month of the final occurrence; ok is false for
	// open-ended schedules.
	Last() (last Month, ok bool)
	// In returns the occurrences dated inside m.
	In(m Month) []Occurrence
	// Origin is the occurrence that matches the stored record itself.
	Origin() Occurrence
}

// FixedOccurrence is a record that happens exactly once.
type FixedOccurrence struct {
	occurrence Occurrence
}

// NewFixed returns a schedule with a single occurrence on date.
func NewFixed(parentID int64, date time.Time, amount decimal.Decimal) (*FixedOccurrence, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is missing", ErrInvalidInput)
	}
	return &FixedOccurrence{occurrence: Occurrence{
		ParentID: parentID,
		Date:     date,
		Amount:   amount,
		Total:    1,
		Label:    "1/1",
	}}, nil
}

func (f *FixedOccurrence) First() Month { return MonthOf(f.occurrence.Date) }

func (f *FixedOccurrence) Last() (Month, bool) { return f.First(), true }

func (f *FixedOccurrence) Origin() Occurrence { return f.occurrence }

func (f *FixedOccurrence) In(m Month) []Occurrence {
	if m != f.First() {
		return nil
	}
	return []Occurrence{f.occurrence}
}

// InstallmentSeries is a purchase split into monthly installments.
// Installments are computed on demand, one month at a time.
type InstallmentSeries struct {
	parentID int64
	origin   time.Time
	n        int
	amount   decimal.Decimal
}

// NewInstallments validates the series; see Project for its shape.
func NewInstallments(parentID int64, origin time.Time, installments int, amount decimal.Decimal) (*InstallmentSeries, error) {
	if err := checkSeries(origin, installments); err != nil {
		return nil, err
	}
	return &InstallmentSeries{parentID: parentID, origin: origin, n: installments, amount: amount}, nil
}

func (s *InstallmentSeries) First() Month { return MonthOf(s.origin) }

func (s *InstallmentSeries) Last() (Month, bool) { return s.First().Add(s.n - 1), true }

func (s *InstallmentSeries) Origin() Occurrence { return s.at(0) }

// In relies on AddMonths clamping: installment i always lands in First()+i.
func (s *InstallmentSeries) In(m Month) []Occurrence {
	i := m.Since(s.First())
	if i < 0 || i >= s.n {
		return nil
	}
	return []Occurrence{s.at(i)}
}

// All returns every installment in order.
func (s *InstallmentSeries) All() []Occurrence {
	out, _ := Project(s.parentID, s.origin, s.n, s.amount)
	return out
}

func (s *InstallmentSeries) at(i int) Occurrence {
	return installment(s.parentID, s.origin, s.n, i, share(s.amount, s.n, i))
}

// MonthlyRecurring repeats every month from its origin onward on a fixed
// day of month. Days past the end of a short month are clamped.
type MonthlyRecurring struct {
	origin Occurrence
	day    int
}

// NewMonthlyRecurring starts a recurrence at origin repeating on day.
func NewMonthlyRecurring(parentID int64, origin time.Time, day int, amount decimal.Decimal) (*MonthlyRecurring, error) {
	if origin.IsZero() {
		return nil, fmt.Errorf("%w: origin date is missing", ErrInvalidInput)
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: recurrence day must be between 1 and 31, got %d", ErrInvalidInput, day)
	}
	return &MonthlyRecurring{
		origin: Occurrence{ParentID: parentID, Date: origin, Amount: amount},
		day:    day,
	}, nil
}

func (r *MonthlyRecurring) First() Month { return MonthOf(r.origin.Date) }

func (r *MonthlyRecurring) Last() (Month, bool) { return Month{}, false }

func (r *MonthlyRecurring) Origin() Occurrence { return r.origin }

// In returns the stored date for the origin month and the recurrence day
// for every later month.
func (r *MonthlyRecurring) In(m Month) []Occurrence {
	i := m.Since(r.First())
	if i < 0 {
		return nil
	}
	if i == 0 {
		return []Occurrence{r.origin}
	}
	o := r.origin
	o.Date = m.DayIn(r.day)
	o.Index = i
	return []Occurrence{o}
}
