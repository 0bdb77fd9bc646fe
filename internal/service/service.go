package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gastos-service/internal/config"
	"github.com/Dan9191/gastos-service/internal/models"
)

// Store is the persistence the service needs. *repository.Repository and
// memory.Store both satisfy it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateExpense(ctx context.Context, e *models.Expense) error
	ListExpenses(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error)
	ListInstallmentExpenses(ctx context.Context, userID int64) ([]models.Expense, error)
	LatestExpenses(ctx context.Context, userID int64, limit int) ([]models.Expense, error)
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	SumExpenses(ctx context.Context, userID int64, from, to time.Time) (models.Money, error)

	CreateBill(ctx context.Context, b *models.Bill) error
	ListBills(ctx context.Context, f models.BillFilter) ([]models.Bill, error)
	LatestBills(ctx context.Context, userID int64, limit int) ([]models.Bill, error)
	ListRecurringBills(ctx context.Context, userID int64) ([]models.Bill, error)
	ListBillReminders(ctx context.Context, day time.Time) ([]models.BillReminder, error)
	GetBill(ctx context.Context, id int64) (*models.Bill, error)
	UpdateBill(ctx context.Context, b *models.Bill) error
	DeleteBill(ctx context.Context, id int64) error
	SumBills(ctx context.Context, userID int64, from, to time.Time) (models.Money, error)

	CreateBillPayment(ctx context.Context, p *models.BillPayment) error
	ListBillPayments(ctx context.Context, billID int64, from, to time.Time) ([]models.BillPayment, error)

	CreateIncome(ctx context.Context, in *models.Income) error
	ListIncomes(ctx context.Context, f models.IncomeFilter) ([]models.Income, error)
	GetIncome(ctx context.Context, id int64) (*models.Income, error)
	DeleteIncome(ctx context.Context, id int64) error
	SumIncome(ctx context.Context, userID int64, from, to time.Time) (models.Money, error)
}

// Notifier delivers recurring bill reminders
type Notifier interface {
	SendBillReminder(to, name string, bill models.Bill, due time.Time) error
}

// latestLimit is how many records the "latest" views return
const latestLimit = 5

// Service handles business logic
type Service struct {
	repo     Store
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
	now      func() time.Time
}

// NewService initializes a new service
func NewService(repo Store, notifier Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, notifier: notifier, log: log, config: cfg, now: time.Now}
}

// SetClock replaces the clock used for "current month" queries
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Ping reports whether storage is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
