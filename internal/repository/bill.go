package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dan9191/gastos-service/internal/models"
)

const billColumns = `id, user_id, titulo, valor, data_conta, eh_mensal, dia_conta`

func scanBill(s scanner) (models.Bill, error) {
	var b models.Bill
	err := s.Scan(&b.ID, &b.UserID, &b.Titulo, &b.Valor, &b.DataConta, &b.EhMensal, &b.DiaConta)
	return b, err
}

func (r *Repository) queryBills(ctx context.Context, op, query string, args ...interface{}) ([]models.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &models.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, &models.StorageError{Op: op, Err: err}
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: op, Err: err}
	}
	return bills, nil
}

// CreateBill inserts a bill and fills its ID
func (r *Repository) CreateBill(ctx context.Context, b *models.Bill) error {
	query := `
		INSERT INTO conta (user_id, titulo, valor, data_conta, eh_mensal, dia_conta)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		b.UserID, b.Titulo, b.Valor, b.DataConta, b.EhMensal, b.DiaConta,
	).Scan(&b.ID)
	if err != nil {
		if pqCode(err) == "foreign_key_violation" {
			return models.NewValidationError("user_id", "Usuário não encontrado")
		}
		return &models.StorageError{Op: "create bill", Err: err}
	}
	return nil
}

// ListBills returns the bills that may appear in the filter's month: bills
// due that month and monthly bills that started before its end.
func (r *Repository) ListBills(ctx context.Context, f models.BillFilter) ([]models.Bill, error) {
	w := &where{}
	w.add("user_id = ?", f.UserID)
	if f.Month != nil {
		start, next := f.Month.Start(), f.Month.Add(1).Start()
		w.add("(data_conta >= ? AND data_conta < ?) OR (eh_mensal AND data_conta < ?)", start, next, next)
	}
	if f.Monthly != nil {
		w.add("eh_mensal = ?", *f.Monthly)
	}
	query := "SELECT " + billColumns + " FROM conta" + w.String() + " ORDER BY data_conta, id"
	return r.queryBills(ctx, "list bills", query, w.args...)
}

// LatestBills returns the bills with the latest due dates
func (r *Repository) LatestBills(ctx context.Context, userID int64, limit int) ([]models.Bill, error) {
	query := "SELECT " + billColumns + " FROM conta WHERE user_id = $1 ORDER BY data_conta DESC, id DESC LIMIT $2"
	return r.queryBills(ctx, "list latest bills", query, userID, limit)
}

// ListRecurringBills returns the monthly bills of a user
func (r *Repository) ListRecurringBills(ctx context.Context, userID int64) ([]models.Bill, error) {
	query := "SELECT " + billColumns + " FROM conta WHERE user_id = $1 AND eh_mensal ORDER BY dia_conta, id"
	return r.queryBills(ctx, "list recurring bills", query, userID)
}

// ListBillReminders returns every monthly bill that started on or before
// the given day together with its owner's e-mail.
func (r *Repository) ListBillReminders(ctx context.Context, day time.Time) ([]models.BillReminder, error) {
	query := `
		SELECT c.id, c.user_id, c.titulo, c.valor, c.data_conta, c.eh_mensal, c.dia_conta, u.email, u.nome_completo
		FROM conta c
		JOIN usuarios u ON u.id = c.user_id
		WHERE c.eh_mensal AND c.data_conta <= $1
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, &models.StorageError{Op: "list bill reminders", Err: err}
	}
	defer rows.Close()

	var reminders []models.BillReminder
	for rows.Next() {
		var rem models.BillReminder
		b := &rem.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Titulo, &b.Valor, &b.DataConta, &b.EhMensal, &b.DiaConta,
			&rem.Email, &rem.NomeCompleto); err != nil {
			return nil, &models.StorageError{Op: "list bill reminders", Err: err}
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list bill reminders", Err: err}
	}
	return reminders, nil
}

// GetBill retrieves a bill by id
func (r *Repository) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+billColumns+" FROM conta WHERE id = $1", id)
	b, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get bill", Err: err}
	}
	return &b, nil
}

// UpdateBill overwrites the editable fields of a bill
func (r *Repository) UpdateBill(ctx context.Context, b *models.Bill) error {
	query := `
		UPDATE conta
		SET titulo = $1, valor = $2, data_conta = $3, eh_mensal = $4, dia_conta = $5
		WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, b.Titulo, b.Valor, b.DataConta, b.EhMensal, b.DiaConta, b.ID)
	if err != nil {
		return &models.StorageError{Op: "update bill", Err: err}
	}
	return expectOne(res, "update bill")
}

// DeleteBill removes a bill
func (r *Repository) DeleteBill(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM conta WHERE id = $1", id)
	if err != nil {
		return &models.StorageError{Op: "delete bill", Err: err}
	}
	return expectOne(res, "delete bill")
}

// SumBills adds up the stored amount of bills due in [from, to)
func (r *Repository) SumBills(ctx context.Context, userID int64, from, to time.Time) (models.Money, error) {
	return r.sum(ctx, "sum bills",
		"SELECT COALESCE(SUM(valor), 0) FROM conta WHERE user_id = $1 AND data_conta >= $2 AND data_conta < $3",
		userID, from, to)
}
