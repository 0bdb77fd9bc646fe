package repository

import (
	"context"
	"time"

	"github.com/Dan9191/gastos-service/internal/models"
)

// CreateBillPayment records that a bill was paid
func (r *Repository) CreateBillPayment(ctx context.Context, p *models.BillPayment) error {
	query := `
		INSERT INTO conta_paga (conta_id, data_pagamento)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.ContaID, p.DataPagamento).Scan(&p.ID)
	if err != nil {
		if pqCode(err) == "foreign_key_violation" {
			return models.NewValidationError("conta_id", "Conta não encontrada")
		}
		return &models.StorageError{Op: "create bill payment", Err: err}
	}
	return nil
}

// ListBillPayments returns the payments of a bill made in [from, to)
func (r *Repository) ListBillPayments(ctx context.Context, billID int64, from, to time.Time) ([]models.BillPayment, error) {
	query := `
		SELECT id, conta_id, data_pagamento
		FROM conta_paga
		WHERE conta_id = $1 AND data_pagamento >= $2 AND data_pagamento < $3
		ORDER BY data_pagamento, id`
	rows, err := r.db.QueryContext(ctx, query, billID, from, to)
	if err != nil {
		return nil, &models.StorageError{Op: "list bill payments", Err: err}
	}
	defer rows.Close()

	payments := []models.BillPayment{}
	for rows.Next() {
		var p models.BillPayment
		if err := rows.Scan(&p.ID, &p.ContaID, &p.DataPagamento); err != nil {
			return nil, &models.StorageError{Op: "list bill payments", Err: err}
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list bill payments", Err: err}
	}
	return payments, nil
}
