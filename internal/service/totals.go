package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

// Totals sums a user's bills, expenses and income for a month by stored
// date. Installments are not projected here: a purchase split in twelve
// counts its full value in the month it was made.
func (s *Service) Totals(ctx context.Context, userID int64, month, year int) (models.Totals, error) {
	m, err := recurrence.NewMonth(year, month)
	if err != nil {
		return models.Totals{}, models.NewValidationError("mes", fmt.Sprintf("Mês inválido: %d/%d", month, year))
	}
	from, to := m.Start(), m.Add(1).Start()

	var totals models.Totals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.repo.SumBills(gctx, userID, from, to)
		totals.TotalContas = sum
		return err
	})
	g.Go(func() error {
		sum, err := s.repo.SumExpenses(gctx, userID, from, to)
		totals.TotalGastos = sum
		return err
	})
	g.Go(func() error {
		sum, err := s.repo.SumIncome(gctx, userID, from, to)
		totals.TotalGanhos = sum
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Errorf("Failed to compute totals for user %d", userID)
		return models.Totals{}, err
	}
	return totals, nil
}

// CurrentTotals is Totals for the month the service clock is in
func (s *Service) CurrentTotals(ctx context.Context, userID int64) (models.Totals, error) {
	now := s.now()
	return s.Totals(ctx, userID, int(now.Month()), now.Year())
}

// CurrentMonth is the month the service clock is in
func (s *Service) CurrentMonth() recurrence.Month {
	return recurrence.MonthOf(s.now())
}
