package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var expenseCols = []string{"id", "user_id", "categoria", "titulo", "valor", "data", "forma_pagamento", "quantidade_parcelas"}

func TestWhere(t *testing.T) {
	w := &where{}
	w.add("user_id = ?", 1)
	w.add("a >= ? AND b < ?", 2, 3)
	assert.Equal(t, " WHERE (user_id = $1) AND (a >= $2 AND b < $3)", w.String())
	assert.Equal(t, []interface{}{1, 2, 3}, w.args)

	assert.Equal(t, "", (&where{}).String())
}

func TestRepository_ListExpenses(t *testing.T) {
	t.Run("month and installment filters", func(t *testing.T) {
		repo, mock, db := newMockRepository(t)
		defer db.Close()

		month, err := recurrence.ParseMonth("2024-11")
		require.NoError(t, err)
		start, next := day(2024, 11, 1), day(2024, 12, 1)

		rows := sqlmock.NewRows(expenseCols).
			AddRow(int64(1), int64(5), "Casa", "Geladeira", "1200.00", day(2024, 1, 10), "credito", 12)

		mock.ExpectQuery(`SELECT id, user_id, categoria, titulo, valor, data, forma_pagamento, quantidade_parcelas FROM gasto WHERE \(user_id = \$1\) AND \(.*make_interval\(months => LEAST\(quantidade_parcelas, 360\) - 1\) >= \$5\)\) AND \(quantidade_parcelas > 1\) ORDER BY data, id`).
			WithArgs(int64(5), start, next, next, start).
			WillReturnRows(rows)

		got, err := repo.ListExpenses(context.Background(), models.ExpenseFilter{UserID: 5, Month: &month, OnlyInstallments: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Geladeira", got[0].Titulo)
		assert.Equal(t, "1200.00", got[0].Valor.StringFixed(2))
		assert.Equal(t, "2024-01-10", got[0].Data.String())
		assert.Equal(t, 12, got[0].QuantidadeParcelas)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows yields empty slice", func(t *testing.T) {
		repo, mock, db := newMockRepository(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT .* FROM gasto WHERE \(user_id = \$1\) ORDER BY data, id`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(expenseCols))

		got, err := repo.ListExpenses(context.Background(), models.ExpenseFilter{UserID: 5})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure is a storage error", func(t *testing.T) {
		repo, mock, db := newMockRepository(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT .* FROM gasto`).WillReturnError(errors.New("connection refused"))

		_, err := repo.ListExpenses(context.Background(), models.ExpenseFilter{UserID: 5})
		var serr *models.StorageError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "list expenses", serr.Op)
	})
}

func TestRepository_ListBills(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	month, err := recurrence.ParseMonth("2024-07")
	require.NoError(t, err)
	monthly := true

	rows := sqlmock.NewRows([]string{"id", "user_id", "titulo", "valor", "data_conta", "eh_mensal", "dia_conta"}).
		AddRow(int64(3), int64(5), "Internet", "99.90", day(2024, 5, 10), true, int64(10))

	mock.ExpectQuery(`SELECT id, user_id, titulo, valor, data_conta, eh_mensal, dia_conta FROM conta WHERE \(user_id = \$1\) AND \(\(data_conta >= \$2 AND data_conta < \$3\) OR \(eh_mensal AND data_conta < \$4\)\) AND \(eh_mensal = \$5\)`).
		WithArgs(int64(5), day(2024, 7, 1), day(2024, 8, 1), day(2024, 8, 1), true).
		WillReturnRows(rows)

	got, err := repo.ListBills(context.Background(), models.BillFilter{UserID: 5, Month: &month, Monthly: &monthly})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DiaConta)
	assert.Equal(t, 10, *got[0].DiaConta)
	assert.True(t, got[0].EhMensal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBill(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM conta WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBill(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetIncome(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "descricao", "valor", "data_recebimento", "eh_recorrente", "dia_ganho"}).
		AddRow(int64(4), int64(5), "Salário", "5000.00", day(2024, 3, 5), false, nil)
	mock.ExpectQuery(`SELECT .* FROM ganho WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT .* FROM ganho WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetIncome(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UserID)
	assert.Nil(t, got.DiaGanho)

	_, err = repo.GetIncome(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Sums(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	from, to := day(2024, 3, 1), day(2024, 4, 1)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(valor\), 0\) FROM gasto WHERE user_id = \$1 AND data >= \$2 AND data < \$3`).
		WithArgs(int64(5), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(valor\), 0\) FROM conta`).
		WithArgs(int64(5), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("150.50"))

	total, err := repo.SumExpenses(context.Background(), 5, from, to)
	require.NoError(t, err)
	assert.Equal(t, "0.00", total.StringFixed(2))

	total, err = repo.SumBills(context.Background(), 5, from, to)
	require.NoError(t, err)
	assert.Equal(t, "150.50", total.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateExpenseNotFound(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE gasto`).
		WithArgs("Casa", "Sofá", sqlmock.AnyArg(), sqlmock.AnyArg(), "pix", 1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateExpense(context.Background(), &models.Expense{
		ID: 42, Categoria: "Casa", Titulo: "Sofá", FormaPagamento: "pix", QuantidadeParcelas: 1,
		Data: models.NewDate(day(2024, 1, 1)),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteBill(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM conta WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteBill(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser(t *testing.T) {
	t.Run("returns generated id", func(t *testing.T) {
		repo, mock, db := newMockRepository(t)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO usuarios`).
			WithArgs("Ana", "ana@example.com", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

		u := &models.User{NomeCompleto: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
		require.NoError(t, repo.CreateUser(context.Background(), u))
		assert.Equal(t, int64(8), u.ID)
	})

	t.Run("duplicate e-mail", func(t *testing.T) {
		repo, mock, db := newMockRepository(t)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO usuarios`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateUser(context.Background(), &models.User{Email: "ana@example.com"})
		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})
}

func TestRepository_CreateBillUnknownUser(t *testing.T) {
	repo, mock, db := newMockRepository(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO conta`).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.CreateBill(context.Background(), &models.Bill{UserID: 77})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "user_id", verr.Field)
}
