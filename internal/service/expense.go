package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
	"github.com/Dan9191/gastos-service/internal/utils"
)

// CreateExpense validates and stores a purchase
func (s *Service) CreateExpense(ctx context.Context, req models.CreateExpenseRequest) (*models.Expense, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	data, err := utils.ParseWireDate(req.Data)
	if err != nil {
		return nil, models.NewValidationError("data", "Formato de data inválido (use dd/mm/yyyy)")
	}
	if !req.Valor.IsPositive() {
		return nil, models.NewValidationError("valor", "O valor deve ser maior que zero")
	}

	expense := &models.Expense{
		UserID:             req.UserID,
		Categoria:          req.Categoria,
		Titulo:             req.Titulo,
		Valor:              *req.Valor,
		Data:               models.NewDate(data),
		FormaPagamento:     req.FormaPagamento,
		QuantidadeParcelas: req.QuantidadeParcelas,
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		s.log.WithError(err).Error("Failed to create expense")
		return nil, err
	}

	s.log.Infof("Expense %d created for user %d (%d installments)", expense.ID, expense.UserID, expense.QuantidadeParcelas)
	return expense, nil
}

// ListExpenses returns one entry per installment. With a month filter only
// the installments dated in that month are kept, which lets a purchase
// split in 12 made in January still show up in November.
func (s *Service) ListExpenses(ctx context.Context, f models.ExpenseFilter) ([]models.ExpenseOccurrence, error) {
	expenses, err := s.repo.ListExpenses(ctx, f)
	if err != nil {
		s.log.WithError(err).Errorf("Failed to list expenses for user %d", f.UserID)
		return nil, err
	}

	result := []models.ExpenseOccurrence{}
	for _, e := range expenses {
		series, err := expenseSchedule(e)
		if err != nil {
			s.log.WithError(err).Warnf("Skipping expense %d with invalid installments", e.ID)
			continue
		}
		for _, occ := range recurrence.SelectForMonth(series, f.Month) {
			result = append(result, models.ExpenseOccurrence{
				Expense:      e,
				Data:         models.NewDate(occ.Date),
				ParcelaAtual: occ.Label + "x",
				ValorParcela: models.NewMoney(occ.Amount),
			})
		}
	}
	return result, nil
}

// InstallmentPlans returns every split purchase of a user with all of its
// installments expanded, regardless of month.
func (s *Service) InstallmentPlans(ctx context.Context, userID int64) ([]models.InstallmentPlan, error) {
	expenses, err := s.repo.ListInstallmentExpenses(ctx, userID)
	if err != nil {
		s.log.WithError(err).Errorf("Failed to list installment expenses for user %d", userID)
		return nil, err
	}

	plans := make([]models.InstallmentPlan, 0, len(expenses))
	for _, e := range expenses {
		series, err := expenseSchedule(e)
		if err != nil {
			s.log.WithError(err).Warnf("Skipping expense %d with invalid installments", e.ID)
			continue
		}
		all := series.All()
		details := make([]models.InstallmentDetail, 0, len(all))
		for _, occ := range all {
			details = append(details, models.InstallmentDetail{
				Titulo: fmt.Sprintf("%s (Parcela %s)", e.Titulo, occ.Label),
				Valor:  models.NewMoney(occ.Amount),
				Data:   models.NewDate(occ.Date),
			})
		}
		plans = append(plans, models.InstallmentPlan{Expense: e, Parcelas: details})
	}
	return plans, nil
}

// LatestExpenses returns the five most recent purchases of a user
func (s *Service) LatestExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	return s.repo.LatestExpenses(ctx, userID, latestLimit)
}

// GetExpense retrieves an expense by id
func (s *Service) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// UpdateExpense overwrites an expense
func (s *Service) UpdateExpense(ctx context.Context, id int64, req models.UpdateExpenseRequest) (*models.Expense, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	data, err := utils.ParseWireDate(req.Data)
	if err != nil {
		return nil, models.NewValidationError("data", "Formato de data inválido (use dd/mm/yyyy)")
	}
	if !req.Valor.IsPositive() {
		return nil, models.NewValidationError("valor", "O valor deve ser maior que zero")
	}

	expense := &models.Expense{
		ID:                 id,
		Categoria:          req.Categoria,
		Titulo:             req.Titulo,
		Valor:              *req.Valor,
		Data:               models.NewDate(data),
		FormaPagamento:     req.FormaPagamento,
		QuantidadeParcelas: req.Installments(),
	}
	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.log.Infof("Expense %d updated", id)
	return expense, nil
}

// DeleteExpense removes an expense
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Expense %d deleted", id)
	return nil
}

func expenseSchedule(e models.Expense) (*recurrence.InstallmentSeries, error) {
	return recurrence.NewInstallments(e.ID, e.Data.Time, e.QuantidadeParcelas, e.Valor.Decimal)
}
