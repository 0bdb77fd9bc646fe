package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dan9191/gastos-service/internal/models"
)

// CreateIncome inserts an income entry and fills its ID
func (r *Repository) CreateIncome(ctx context.Context, in *models.Income) error {
	query := `
		INSERT INTO ganho (user_id, descricao, valor, data_recebimento, eh_recorrente, dia_ganho)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		in.UserID, in.Descricao, in.Valor, in.DataRecebimento, in.EhRecorrente, in.DiaGanho,
	).Scan(&in.ID)
	if err != nil {
		if pqCode(err) == "foreign_key_violation" {
			return models.NewValidationError("user_id", "Usuário não encontrado")
		}
		return &models.StorageError{Op: "create income", Err: err}
	}
	return nil
}

// ListIncomes returns income entries of a user, received in the filter's
// month when one is set
func (r *Repository) ListIncomes(ctx context.Context, f models.IncomeFilter) ([]models.Income, error) {
	w := &where{}
	w.add("user_id = ?", f.UserID)
	if f.Month != nil {
		w.add("data_recebimento >= ? AND data_recebimento < ?", f.Month.Start(), f.Month.Add(1).Start())
	}
	query := `SELECT id, user_id, descricao, valor, data_recebimento, eh_recorrente, dia_ganho FROM ganho` +
		w.String() + " ORDER BY data_recebimento, id"

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, &models.StorageError{Op: "list incomes", Err: err}
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var in models.Income
		if err := rows.Scan(&in.ID, &in.UserID, &in.Descricao, &in.Valor, &in.DataRecebimento,
			&in.EhRecorrente, &in.DiaGanho); err != nil {
			return nil, &models.StorageError{Op: "list incomes", Err: err}
		}
		incomes = append(incomes, in)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list incomes", Err: err}
	}
	return incomes, nil
}

// GetIncome retrieves an income entry by id
func (r *Repository) GetIncome(ctx context.Context, id int64) (*models.Income, error) {
	query := `SELECT id, user_id, descricao, valor, data_recebimento, eh_recorrente, dia_ganho FROM ganho WHERE id = $1`
	var in models.Income
	err := r.db.QueryRowContext(ctx, query, id).Scan(&in.ID, &in.UserID, &in.Descricao, &in.Valor,
		&in.DataRecebimento, &in.EhRecorrente, &in.DiaGanho)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get income", Err: err}
	}
	return &in, nil
}

// DeleteIncome removes an income entry
func (r *Repository) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ganho WHERE id = $1", id)
	if err != nil {
		return &models.StorageError{Op: "delete income", Err: err}
	}
	return expectOne(res, "delete income")
}

// SumIncome adds up income received in [from, to)
func (r *Repository) SumIncome(ctx context.Context, userID int64, from, to time.Time) (models.Money, error) {
	return r.sum(ctx, "sum income",
		"SELECT COALESCE(SUM(valor), 0) FROM ganho WHERE user_id = $1 AND data_recebimento >= $2 AND data_recebimento < $3",
		userID, from, to)
}
