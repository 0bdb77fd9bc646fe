package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

const expenseColumns = `id, user_id, categoria, titulo, valor, data, forma_pagamento, quantidade_parcelas`

func scanExpense(s scanner) (models.Expense, error) {
	var e models.Expense
	err := s.Scan(&e.ID, &e.UserID, &e.Categoria, &e.Titulo, &e.Valor, &e.Data, &e.FormaPagamento, &e.QuantidadeParcelas)
	return e, err
}

func (r *Repository) queryExpenses(ctx context.Context, op, query string, args ...interface{}) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &models.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, &models.StorageError{Op: op, Err: err}
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: op, Err: err}
	}
	return expenses, nil
}

// CreateExpense inserts an expense and fills its ID
func (r *Repository) CreateExpense(ctx context.Context, e *models.Expense) error {
	query := `
		INSERT INTO gasto (user_id, categoria, titulo, valor, data, forma_pagamento, quantidade_parcelas)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		e.UserID, e.Categoria, e.Titulo, e.Valor, e.Data, e.FormaPagamento, e.QuantidadeParcelas,
	).Scan(&e.ID)
	if err != nil {
		if pqCode(err) == "foreign_key_violation" {
			return models.NewValidationError("user_id", "Usuário não encontrado")
		}
		return &models.StorageError{Op: "create expense", Err: err}
	}
	return nil
}

// ListExpenses returns the expenses that may appear in the filter's month:
// purchases made that month plus installment purchases whose last
// installment is not before it. Exact month placement is left to the
// recurrence package.
func (r *Repository) ListExpenses(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error) {
	w := &where{}
	w.add("user_id = ?", f.UserID)
	if f.Month != nil {
		start, next := f.Month.Start(), f.Month.Add(1).Start()
		w.add(fmt.Sprintf("(data >= ? AND data < ?) OR (quantidade_parcelas > 1 AND data < ? AND data + make_interval(months => LEAST(quantidade_parcelas, %d) - 1) >= ?)",
			recurrence.MaxInstallments), start, next, next, start)
	}
	if f.OnlyInstallments {
		w.add("quantidade_parcelas > 1")
	}
	query := "SELECT " + expenseColumns + " FROM gasto" + w.String() + " ORDER BY data, id"
	return r.queryExpenses(ctx, "list expenses", query, w.args...)
}

// ListInstallmentExpenses returns every multi-installment expense of a user
func (r *Repository) ListInstallmentExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM gasto WHERE user_id = $1 AND quantidade_parcelas > 1 ORDER BY data, id"
	return r.queryExpenses(ctx, "list installment expenses", query, userID)
}

// LatestExpenses returns the most recent expenses of a user
func (r *Repository) LatestExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM gasto WHERE user_id = $1 ORDER BY data DESC, id DESC LIMIT $2"
	return r.queryExpenses(ctx, "list latest expenses", query, userID, limit)
}

// GetExpense retrieves an expense by id
func (r *Repository) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM gasto WHERE id = $1", id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get expense", Err: err}
	}
	return &e, nil
}

// UpdateExpense overwrites the editable fields of an expense
func (r *Repository) UpdateExpense(ctx context.Context, e *models.Expense) error {
	query := `
		UPDATE gasto
		SET categoria = $1, titulo = $2, valor = $3, data = $4, forma_pagamento = $5, quantidade_parcelas = $6
		WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		e.Categoria, e.Titulo, e.Valor, e.Data, e.FormaPagamento, e.QuantidadeParcelas, e.ID)
	if err != nil {
		return &models.StorageError{Op: "update expense", Err: err}
	}
	return expectOne(res, "update expense")
}

// DeleteExpense removes an expense
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM gasto WHERE id = $1", id)
	if err != nil {
		return &models.StorageError{Op: "delete expense", Err: err}
	}
	return expectOne(res, "delete expense")
}

// SumExpenses adds up the stored amount of expenses purchased in [from, to)
func (r *Repository) SumExpenses(ctx context.Context, userID int64, from, to time.Time) (models.Money, error) {
	return r.sum(ctx, "sum expenses",
		"SELECT COALESCE(SUM(valor), 0) FROM gasto WHERE user_id = $1 AND data >= $2 AND data < $3",
		userID, from, to)
}

func (r *Repository) sum(ctx context.Context, op, query string, args ...interface{}) (models.Money, error) {
	var total models.Money
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return models.Money{}, &models.StorageError{Op: op, Err: err}
	}
	return total, nil
}
