package service

import (
	"context"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
	"github.com/Dan9191/gastos-service/internal/utils"
)

// CreateBill validates and stores a bill. The recurrence day is kept only
// for monthly bills.
func (s *Service) CreateBill(ctx context.Context, req models.CreateBillRequest) (*models.Bill, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	due, err := utils.ParseWireDate(req.DataVencimento)
	if err != nil {
		return nil, models.NewValidationError("data_vencimento", "Formato de data de vencimento inválido. Use dd/mm/aaaa.")
	}
	if !req.Valor.IsPositive() {
		return nil, models.NewValidationError("valor", "O valor deve ser maior que zero")
	}

	bill := &models.Bill{
		UserID:    req.UserID,
		Titulo:    req.Titulo,
		Valor:     *req.Valor,
		DataConta: models.NewDate(due),
		EhMensal:  *req.EhRecorrente,
	}
	if bill.EhMensal {
		if req.DiaRecorrencia == nil || *req.DiaRecorrencia < 1 || *req.DiaRecorrencia > 31 {
			return nil, models.NewValidationError("dia_recorrencia", "Dia de recorrência inválido. Deve ser entre 1 e 31.")
		}
		day := *req.DiaRecorrencia
		bill.DiaConta = &day
	}

	if err := s.repo.CreateBill(ctx, bill); err != nil {
		s.log.WithError(err).Error("Failed to create bill")
		return nil, err
	}

	s.log.Infof("Bill %d created for user %d (monthly: %t)", bill.ID, bill.UserID, bill.EhMensal)
	return bill, nil
}

// ListBills returns a user's bills. With a month filter, monthly bills are
// projected into that month on their recurrence day and one-off bills are
// kept only when due in it.
func (s *Service) ListBills(ctx context.Context, f models.BillFilter) ([]models.BillOccurrence, error) {
	bills, err := s.repo.ListBills(ctx, f)
	if err != nil {
		s.log.WithError(err).Errorf("Failed to list bills for user %d", f.UserID)
		return nil, err
	}

	result := []models.BillOccurrence{}
	for _, b := range bills {
		schedule, err := billSchedule(b)
		if err != nil {
			s.log.WithError(err).Warnf("Skipping bill %d with invalid schedule", b.ID)
			continue
		}
		for _, occ := range recurrence.SelectForMonth(schedule, f.Month) {
			result = append(result, models.BillOccurrence{Bill: b, DataOcorrencia: models.NewDate(occ.Date)})
		}
	}
	return result, nil
}

// GetBill retrieves a bill by id
func (s *Service) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	return s.repo.GetBill(ctx, id)
}

// UpdateBill overwrites a bill. The recurrence day is clamped to [1, 31]
// and cleared for non-monthly bills.
func (s *Service) UpdateBill(ctx context.Context, id int64, req models.UpdateBillRequest) (*models.Bill, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	due, err := utils.ParseWireDate(req.DataConta)
	if err != nil {
		return nil, models.NewValidationError("data_conta", "Formato de data inválido. Use dd/mm/aaaa.")
	}
	if !req.Valor.IsPositive() {
		return nil, models.NewValidationError("valor", "O valor deve ser maior que zero")
	}

	bill := &models.Bill{
		ID:        id,
		Titulo:    req.Titulo,
		Valor:     *req.Valor,
		DataConta: models.NewDate(due),
		EhMensal:  req.IsContaMensal,
	}
	if bill.EhMensal {
		day := min(max(req.DataVencimento, 1), 31)
		bill.DiaConta = &day
	}

	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return nil, err
	}

	s.log.Infof("Bill %d updated", id)
	return bill, nil
}

// DeleteBill removes a bill
func (s *Service) DeleteBill(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Bill %d deleted", id)
	return nil
}

// LatestBills returns the five bills with the latest due dates
func (s *Service) LatestBills(ctx context.Context, userID int64) ([]models.Bill, error) {
	return s.repo.LatestBills(ctx, userID, latestLimit)
}

// RecurringBills lists the monthly bills of a user
func (s *Service) RecurringBills(ctx context.Context, userID int64) ([]models.RecurringBill, error) {
	bills, err := s.repo.ListRecurringBills(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.RecurringBill, 0, len(bills))
	for _, b := range bills {
		out = append(out, models.RecurringBill{ID: b.ID, Titulo: b.Titulo, Valor: b.Valor, DiaConta: b.DiaConta})
	}
	return out, nil
}

// PayBill records a payment for a bill
func (s *Service) PayBill(ctx context.Context, req models.BillPaymentRequest) (*models.BillPayment, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	paidOn, err := utils.ParseAnyDate(req.DataPagamento)
	if err != nil {
		return nil, models.NewValidationError("data_pagamento", "Data de pagamento inválida. Use dd/mm/aaaa.")
	}

	payment := &models.BillPayment{ContaID: req.ContaID, DataPagamento: models.NewDate(paidOn)}
	if err := s.repo.CreateBillPayment(ctx, payment); err != nil {
		s.log.WithError(err).Errorf("Failed to mark bill %d as paid", req.ContaID)
		return nil, err
	}

	s.log.Infof("Bill %d paid on %s", payment.ContaID, payment.DataPagamento)
	return payment, nil
}

// BillPayments lists the payments of a bill made in a month
func (s *Service) BillPayments(ctx context.Context, billID int64, month recurrence.Month) ([]models.BillPayment, error) {
	return s.repo.ListBillPayments(ctx, billID, month.Start(), month.Add(1).Start())
}

func billSchedule(b models.Bill) (recurrence.Schedule, error) {
	if !b.EhMensal {
		return recurrence.NewFixed(b.ID, b.DataConta.Time, b.Valor.Decimal)
	}
	day := b.DataConta.Day()
	if b.DiaConta != nil {
		day = *b.DiaConta
	}
	return recurrence.NewMonthlyRecurring(b.ID, b.DataConta.Time, day, b.Valor.Decimal)
}
