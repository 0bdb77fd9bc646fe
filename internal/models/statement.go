package models

import "github.com/Dan9191/gastos-service/internal/recurrence"

// Statement is everything that happens to a user's money in one month, with
// installments and monthly bills already projected into it.
type Statement struct {
	UserID   int64
	Month    recurrence.Month
	Expenses []ExpenseOccurrence
	Bills    []BillOccurrence
	Incomes  []Income

	TotalGastos Money
	TotalContas Money
	TotalGanhos Money
}

// Balance is income minus expenses and bills
func (s Statement) Balance() Money {
	return NewMoney(s.TotalGanhos.Sub(s.TotalGastos.Decimal).Sub(s.TotalContas.Decimal))
}
