package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

// Statement collects everything dated in a month for a user. Unlike Totals,
// its sums use the projected installment and bill amounts.
func (s *Service) Statement(ctx context.Context, userID int64, month recurrence.Month) (*models.Statement, error) {
	st := &models.Statement{UserID: userID, Month: month}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.Expenses, err = s.ListExpenses(gctx, models.ExpenseFilter{UserID: userID, Month: &month})
		return err
	})
	g.Go(func() error {
		var err error
		st.Bills, err = s.ListBills(gctx, models.BillFilter{UserID: userID, Month: &month})
		return err
	})
	g.Go(func() error {
		var err error
		st.Incomes, err = s.ListIncomes(gctx, models.IncomeFilter{UserID: userID, Month: &month})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gastos, contas, ganhos := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range st.Expenses {
		gastos = gastos.Add(e.ValorParcela.Decimal)
	}
	for _, b := range st.Bills {
		contas = contas.Add(b.Valor.Decimal)
	}
	for _, in := range st.Incomes {
		ganhos = ganhos.Add(in.Valor.Decimal)
	}
	st.TotalGastos = models.NewMoney(gastos)
	st.TotalContas = models.NewMoney(contas)
	st.TotalGanhos = models.NewMoney(ganhos)

	s.log.Infof("Statement built for user %d, %s: %d expenses, %d bills, %d incomes",
		userID, month, len(st.Expenses), len(st.Bills), len(st.Incomes))
	return st, nil
}
