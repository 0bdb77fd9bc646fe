package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Dan9191/gastos-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return &models.StorageError{Op: "ping database", Err: err}
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// where accumulates AND-ed conditions written with ? placeholders and
// renders them with postgres $n markers.
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, args ...interface{}) {
	var b strings.Builder
	n := len(w.args)
	for _, c := range cond {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	w.conds = append(w.conds, "("+b.String()+")")
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// expectOne turns a zero-row UPDATE or DELETE into ErrNotFound, which is
// also what a concurrent delete of the same record looks like.
func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &models.StorageError{Op: op, Err: err}
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name()
	}
	return ""
}
