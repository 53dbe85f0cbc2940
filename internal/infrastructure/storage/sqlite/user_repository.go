package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/user"
)

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewUserRepository(db *sql.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, login, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (login, password_hash) VALUES (?, ?)`, login, passwordHash)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return 0, user.ErrAlreadyExists
		}
		r.log.Error("failed to create user", "login", login, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user id: %w", err)
	}

	return int(id), nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, login, password_hash, created_at FROM users WHERE login = ?`, login).
		Scan(&u.ID, &u.Login, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}
