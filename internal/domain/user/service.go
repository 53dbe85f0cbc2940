package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, login, password string) (int, error)
	Authenticate(ctx context.Context, login, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	// сравнивается с паролем неизвестного пользователя, чтобы время ответа не выдавало существование логина
	dummyHash []byte
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("loancalc-dummy-password"), bcrypt.DefaultCost)

	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
		dummyHash: dummy,
	}
}

func (s *Service) Register(ctx context.Context, login, password string) (int, error) {
	if err := s.validator.ValidateRegister(login, password); err != nil {
		s.log.Debug("validation failed", "login", login, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.repo.Create(ctx, login, string(hash))
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			s.log.Debug("login already taken", "login", login)
			return 0, ErrAlreadyExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", userID, "login", login)

	return userID, nil
}

// Authenticate returns ErrInvalidAuth for every credential failure so callers
// cannot tell an unknown login from a wrong password.
func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return User{}, fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return User{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}
