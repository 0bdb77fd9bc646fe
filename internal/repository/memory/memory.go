// Package memory is a process-local Store used for development runs
// (STORAGE=memory) and for service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

// Store keeps users and financial records in maps guarded by a mutex
type Store struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]models.User
	expenses map[int64]models.Expense
	bills    map[int64]models.Bill
	payments map[int64]models.BillPayment
	incomes  map[int64]models.Income
}

// New returns an empty Store
func New() *Store {
	return &Store{
		users:    map[int64]models.User{},
		expenses: map[int64]models.Expense{},
		bills:    map[int64]models.Bill{},
		payments: map[int64]models.BillPayment{},
		incomes:  map[int64]models.Income{},
	}
}

// Ping always succeeds
func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// CreateUser stores a user and assigns its id
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.ErrEmailTaken
		}
	}
	user.ID = s.nextID()
	s.users[user.ID] = *user
	return nil
}

// FindUserByEmail looks a user up by e-mail
func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

// CreateExpense stores an expense and assigns its id
func (s *Store) CreateExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[e.UserID]; !ok {
		return models.NewValidationError("user_id", "Usuário não encontrado")
	}
	e.ID = s.nextID()
	s.expenses[e.ID] = *e
	return nil
}

// ListExpenses keeps the expenses whose installments reach the filter month
func (s *Store) ListExpenses(_ context.Context, f models.ExpenseFilter) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID != f.UserID || (f.OnlyInstallments && !e.IsInstallment()) {
			continue
		}
		if f.Month != nil {
			first := recurrence.MonthOf(e.Data.Time)
			last := first.Add(min(max(e.QuantidadeParcelas, 1), recurrence.MaxInstallments) - 1)
			if f.Month.Before(first) || f.Month.After(last) {
				continue
			}
		}
		out = append(out, e)
	}
	sortExpenses(out, false)
	return out, nil
}

// ListInstallmentExpenses returns the user's expenses split in more than one installment
func (s *Store) ListInstallmentExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	return s.ListExpenses(ctx, models.ExpenseFilter{UserID: userID, OnlyInstallments: true})
}

// LatestExpenses returns the user's most recent expenses
func (s *Store) LatestExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error) {
	all, _ := s.ListExpenses(ctx, models.ExpenseFilter{UserID: userID})
	sortExpenses(all, true)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// GetExpense returns one expense or ErrNotFound
func (s *Store) GetExpense(_ context.Context, id int64) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &e, nil
}

// UpdateExpense keeps the owner of the stored row
func (s *Store) UpdateExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.expenses[e.ID]
	if !ok {
		return models.ErrNotFound
	}
	e.UserID = old.UserID
	s.expenses[e.ID] = *e
	return nil
}

// DeleteExpense removes an expense
func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

// SumExpenses adds up the expenses dated in [from, to)
func (s *Store) SumExpenses(_ context.Context, userID int64, from, to time.Time) (models.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, e := range s.expenses {
		if e.UserID == userID && within(e.Data.Time, from, to) {
			total = total.Add(e.Valor.Decimal)
		}
	}
	return models.NewMoney(total), nil
}

// CreateBill stores a bill and assigns its id
func (s *Store) CreateBill(_ context.Context, b *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[b.UserID]; !ok {
		return models.NewValidationError("user_id", "Usuário não encontrado")
	}
	b.ID = s.nextID()
	s.bills[b.ID] = *b
	return nil
}

// ListBills keeps bills due in the filter month plus monthly bills that
// started before it
func (s *Store) ListBills(_ context.Context, f models.BillFilter) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Bill{}
	for _, b := range s.bills {
		if b.UserID != f.UserID {
			continue
		}
		if f.Monthly != nil && b.EhMensal != *f.Monthly {
			continue
		}
		if f.Month != nil {
			due := recurrence.MonthOf(b.DataConta.Time)
			if due != *f.Month && !(b.EhMensal && due.Before(*f.Month)) {
				continue
			}
		}
		out = append(out, b)
	}
	sortBills(out, false)
	return out, nil
}

// LatestBills returns the user's most recent bills
func (s *Store) LatestBills(ctx context.Context, userID int64, limit int) ([]models.Bill, error) {
	all, _ := s.ListBills(ctx, models.BillFilter{UserID: userID})
	sortBills(all, true)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ListRecurringBills returns the user's monthly bills
func (s *Store) ListRecurringBills(ctx context.Context, userID int64) ([]models.Bill, error) {
	monthly := true
	all, _ := s.ListBills(ctx, models.BillFilter{UserID: userID, Monthly: &monthly})
	sort.SliceStable(all, func(i, j int) bool { return dayOf(all[i]) < dayOf(all[j]) })
	return all, nil
}

// ListBillReminders returns the monthly bills started by day along with their owners
func (s *Store) ListBillReminders(_ context.Context, day time.Time) ([]models.BillReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.BillReminder{}
	for _, b := range s.bills {
		if !b.EhMensal || b.DataConta.After(day) {
			continue
		}
		u := s.users[b.UserID]
		out = append(out, models.BillReminder{Bill: b, Email: u.Email, NomeCompleto: u.NomeCompleto})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetBill returns one bill or ErrNotFound
func (s *Store) GetBill(_ context.Context, id int64) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

// UpdateBill replaces a bill's editable fields
func (s *Store) UpdateBill(_ context.Context, b *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.bills[b.ID]
	if !ok {
		return models.ErrNotFound
	}
	b.UserID = old.UserID
	s.bills[b.ID] = *b
	return nil
}

// DeleteBill removes a bill and its payments
func (s *Store) DeleteBill(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.bills, id)
	for pid, p := range s.payments {
		if p.ContaID == id {
			delete(s.payments, pid)
		}
	}
	return nil
}

// SumBills adds up the bills dated in [from, to)
func (s *Store) SumBills(_ context.Context, userID int64, from, to time.Time) (models.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, b := range s.bills {
		if b.UserID == userID && within(b.DataConta.Time, from, to) {
			total = total.Add(b.Valor.Decimal)
		}
	}
	return models.NewMoney(total), nil
}

// CreateBillPayment records a payment for an existing bill
func (s *Store) CreateBillPayment(_ context.Context, p *models.BillPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[p.ContaID]; !ok {
		return models.NewValidationError("conta_id", "Conta não encontrada")
	}
	p.ID = s.nextID()
	s.payments[p.ID] = *p
	return nil
}

// ListBillPayments returns a bill's payments made in [from, to)
func (s *Store) ListBillPayments(_ context.Context, billID int64, from, to time.Time) ([]models.BillPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.BillPayment{}
	for _, p := range s.payments {
		if p.ContaID == billID && within(p.DataPagamento.Time, from, to) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DataPagamento.Equal(out[j].DataPagamento.Time) {
			return out[i].DataPagamento.Before(out[j].DataPagamento.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateIncome stores an income entry and assigns its id
func (s *Store) CreateIncome(_ context.Context, in *models.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[in.UserID]; !ok {
		return models.NewValidationError("user_id", "Usuário não encontrado")
	}
	in.ID = s.nextID()
	s.incomes[in.ID] = *in
	return nil
}

// ListIncomes returns the user's income entries matching the filter
func (s *Store) ListIncomes(_ context.Context, f models.IncomeFilter) ([]models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Income{}
	for _, in := range s.incomes {
		if in.UserID != f.UserID {
			continue
		}
		if f.Month != nil && !f.Month.Contains(in.DataRecebimento.Time) {
			continue
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DataRecebimento.Equal(out[j].DataRecebimento.Time) {
			return out[i].DataRecebimento.Before(out[j].DataRecebimento.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetIncome returns one income entry or ErrNotFound
func (s *Store) GetIncome(_ context.Context, id int64) (*models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.incomes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &in, nil
}

// DeleteIncome removes an income entry
func (s *Store) DeleteIncome(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.incomes, id)
	return nil
}

// SumIncome adds up the income received in [from, to)
func (s *Store) SumIncome(_ context.Context, userID int64, from, to time.Time) (models.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, in := range s.incomes {
		if in.UserID == userID && within(in.DataRecebimento.Time, from, to) {
			total = total.Add(in.Valor.Decimal)
		}
	}
	return models.NewMoney(total), nil
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func dayOf(b models.Bill) int {
	if b.DiaConta != nil {
		return *b.DiaConta
	}
	return b.DataConta.Day()
}

func sortExpenses(es []models.Expense, desc bool) {
	sort.Slice(es, func(i, j int) bool {
		a, b := es[i], es[j]
		if desc {
			a, b = b, a
		}
		if !a.Data.Equal(b.Data.Time) {
			return a.Data.Before(b.Data.Time)
		}
		return a.ID < b.ID
	})
}

func sortBills(bs []models.Bill, desc bool) {
	sort.Slice(bs, func(i, j int) bool {
		a, b := bs[i], bs[j]
		if desc {
			a, b = b, a
		}
		if !a.DataConta.Equal(b.DataConta.Time) {
			return a.DataConta.Before(b.DataConta.Time)
		}
		return a.ID < b.ID
	})
}
