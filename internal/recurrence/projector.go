// Package recurrence expands stored financial records into the dated
// occurrences they produce: installment series, monthly recurring bills
// and single fixed entries. Everything here is pure computation.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for non-positive installment counts, zero
// dates and malformed months.
var ErrInvalidInput = errors.New("invalid input")

// MaxInstallments is the longest series a purchase may be split into.
const MaxInstallments = 360

// Occurrence is one concrete manifestation of a record in a given month.
// It is derived at query time and never stored.
type Occurrence struct {
	ParentID int64
	Date     time.Time
	Amount   decimal.Decimal
	Index    int // zero based position in the series
	Total    int // installment count, 0 for open-ended recurrences
	Label    string
}

// Project expands a purchase into its installments. Occurrence i is dated
// origin + i months (see AddMonths) and carries the label "i+1/N".
func Project(parentID int64, origin time.Time, installments int, amount decimal.Decimal) ([]Occurrence, error) {
	if err := checkSeries(origin, installments); err != nil {
		return nil, err
	}

	parts, err := Split(amount, installments)
	if err != nil {
		return nil, err
	}

	occurrences := make([]Occurrence, installments)
	for i := 0; i < installments; i++ {
		occurrences[i] = installment(parentID, origin, installments, i, parts[i])
	}
	return occurrences, nil
}

func checkSeries(origin time.Time, installments int) error {
	if installments < 1 || installments > MaxInstallments {
		return fmt.Errorf("%w: installment count must be between 1 and %d, got %d", ErrInvalidInput, MaxInstallments, installments)
	}
	if origin.IsZero() {
		return fmt.Errorf("%w: origin date is missing", ErrInvalidInput)
	}
	return nil
}

func installment(parentID int64, origin time.Time, n, i int, amount decimal.Decimal) Occurrence {
	return Occurrence{
		ParentID: parentID,
		Date:     AddMonths(origin, i),
		Amount:   amount,
		Index:    i,
		Total:    n,
		Label:    fmt.Sprintf("%d/%d", i+1, n),
	}
}

// Split divides amount into n parts of whole cents. The amount is first
// rounded to cents; leftover cents go one each to the earliest parts, so
// the parts always add up to the rounded amount.
func Split(amount decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cannot split into %d parts", ErrInvalidInput, n)
	}

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		parts[i] = share(amount, n, i)
	}
	return parts, nil
}

// share is part i of Split(amount, n) computed on its own.
func share(amount decimal.Decimal, n, i int) decimal.Decimal {
	cents := amount.Round(2).Shift(2).IntPart()
	base := cents / int64(n)
	rest := cents % int64(n)

	step := int64(1)
	if rest < 0 {
		step, rest = -1, -rest
	}
	if int64(i) < rest {
		base += step
	}
	return decimal.New(base, -2)
}
