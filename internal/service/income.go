package service

import (
	"context"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
	"github.com/Dan9191/gastos-service/internal/utils"
)

// CreateIncome validates and stores an income entry. The receipt date may
// come as dd/mm/yyyy or yyyy-mm-dd.
func (s *Service) CreateIncome(ctx context.Context, req models.CreateIncomeRequest) (*models.Income, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	received, err := utils.ParseAnyDate(req.DataRecebimento)
	if err != nil {
		return nil, models.NewValidationError("data_recebimento", "Formato de data inválido. Use dd/mm/aaaa.")
	}
	if !req.Valor.IsPositive() {
		return nil, models.NewValidationError("valor", "O valor deve ser maior que zero")
	}

	income := &models.Income{
		UserID:          req.UserID,
		Descricao:       req.Descricao,
		Valor:           *req.Valor,
		DataRecebimento: models.NewDate(received),
		EhRecorrente:    *req.EhRecorrente,
	}
	if income.EhRecorrente {
		if req.DiaVencimento == nil || *req.DiaVencimento < 1 || *req.DiaVencimento > 31 {
			return nil, models.NewValidationError("dia_vencimento", "Dia de recebimento inválido. Deve ser entre 1 e 31.")
		}
		day := *req.DiaVencimento
		income.DiaGanho = &day
	}

	if err := s.repo.CreateIncome(ctx, income); err != nil {
		s.log.WithError(err).Error("Failed to create income")
		return nil, err
	}

	s.log.Infof("Income %d created for user %d", income.ID, income.UserID)
	return income, nil
}

// ListIncomes returns a user's income. Income is never projected: an entry
// shows up only in the month it was received, even when flagged recurring.
func (s *Service) ListIncomes(ctx context.Context, f models.IncomeFilter) ([]models.Income, error) {
	incomes, err := s.repo.ListIncomes(ctx, f)
	if err != nil {
		s.log.WithError(err).Errorf("Failed to list incomes for user %d", f.UserID)
		return nil, err
	}

	result := []models.Income{}
	for _, in := range incomes {
		fixed, err := recurrence.NewFixed(in.ID, in.DataRecebimento.Time, in.Valor.Decimal)
		if err != nil {
			s.log.WithError(err).Warnf("Skipping income %d without date", in.ID)
			continue
		}
		if len(recurrence.SelectForMonth(fixed, f.Month)) > 0 {
			result = append(result, in)
		}
	}
	return result, nil
}

// GetIncome retrieves an income entry by id
func (s *Service) GetIncome(ctx context.Context, id int64) (*models.Income, error) {
	return s.repo.GetIncome(ctx, id)
}

// DeleteIncome removes an income entry
func (s *Service) DeleteIncome(ctx context.Context, id int64) error {
	if err := s.repo.DeleteIncome(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Income %d deleted", id)
	return nil
}
