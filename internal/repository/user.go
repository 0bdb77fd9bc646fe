package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dan9191/gastos-service/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO usuarios (nome_completo, email, senha)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, user.NomeCompleto, user.Email, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		if pqCode(err) == "unique_violation" {
			return models.ErrEmailTaken
		}
		return &models.StorageError{Op: "create user", Err: err}
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, nome_completo, email, senha
		FROM usuarios
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.NomeCompleto, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.StorageError{Op: "find user", Err: err}
	}
	return user, nil
}
