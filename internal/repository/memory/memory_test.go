package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

func day(y int, m time.Month, d int) models.Date {
	return models.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func seedUser(t *testing.T, s *Store) int64 {
	t.Helper()
	u := &models.User{NomeCompleto: "Ana", Email: "ana@example.com"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u.ID
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()
	seedUser(t, s)
	err := s.CreateUser(context.Background(), &models.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestListExpensesByMonthCoversInstallments(t *testing.T) {
	ctx := context.Background()
	s := New()
	uid := seedUser(t, s)

	require.NoError(t, s.CreateExpense(ctx, &models.Expense{UserID: uid, Titulo: "TV",
		Valor: models.NewMoney(decimal.RequireFromString("300")), Data: day(2024, 1, 15), QuantidadeParcelas: 3}))
	require.NoError(t, s.CreateExpense(ctx, &models.Expense{UserID: uid, Titulo: "Pão",
		Valor: models.NewMoney(decimal.RequireFromString("10")), Data: day(2024, 2, 1), QuantidadeParcelas: 1}))

	march := recurrence.Month{Year: 2024, Month: time.March}
	got, err := s.ListExpenses(ctx, models.ExpenseFilter{UserID: uid, Month: &march})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TV", got[0].Titulo)

	april := recurrence.Month{Year: 2024, Month: time.April}
	got, err = s.ListExpenses(ctx, models.ExpenseFilter{UserID: uid, Month: &april})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateExpenseUnknownUser(t *testing.T) {
	err := New().CreateExpense(context.Background(), &models.Expense{UserID: 42})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListBillsIncludesEarlierMonthlyBills(t *testing.T) {
	ctx := context.Background()
	s := New()
	uid := seedUser(t, s)

	require.NoError(t, s.CreateBill(ctx, &models.Bill{UserID: uid, Titulo: "Aluguel", DataConta: day(2024, 5, 10), EhMensal: true}))
	require.NoError(t, s.CreateBill(ctx, &models.Bill{UserID: uid, Titulo: "IPVA", DataConta: day(2024, 5, 20)}))

	july := recurrence.Month{Year: 2024, Month: time.July}
	got, err := s.ListBills(ctx, models.BillFilter{UserID: uid, Month: &july})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Aluguel", got[0].Titulo)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := New()
	assert.ErrorIs(t, s.UpdateExpense(ctx, &models.Expense{ID: 9}), models.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBill(ctx, 9), models.ErrNotFound)
	assert.ErrorIs(t, s.DeleteIncome(ctx, 9), models.ErrNotFound)
}

func TestLatestExpensesLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	uid := seedUser(t, s)
	for d := 1; d <= 7; d++ {
		require.NoError(t, s.CreateExpense(ctx, &models.Expense{UserID: uid, Data: day(2024, 3, d), QuantidadeParcelas: 1}))
	}

	got, err := s.LatestExpenses(ctx, uid, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, 7, got[0].Data.Day())
	assert.Equal(t, 3, got[4].Data.Day())
}

func TestSumsUseStoredDate(t *testing.T) {
	ctx := context.Background()
	s := New()
	uid := seedUser(t, s)
	require.NoError(t, s.CreateExpense(ctx, &models.Expense{UserID: uid,
		Valor: models.NewMoney(decimal.RequireFromString("1200")), Data: day(2024, 1, 10), QuantidadeParcelas: 12}))

	jan := recurrence.Month{Year: 2024, Month: time.January}
	sum, err := s.SumExpenses(ctx, uid, jan.Start(), jan.Add(1).Start())
	require.NoError(t, err)
	assert.Equal(t, "1200.00", sum.StringFixed(2))

	feb := jan.Add(1)
	sum, err = s.SumExpenses(ctx, uid, feb.Start(), feb.Add(1).Start())
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}
