package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const (
	DefaultTTL = 24 * time.Hour
	tokenBytes = 32
)

type Servicer interface {
	Activate(ctx context.Context, userID int) (string, error)
	Deactivate(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (Session, bool, error)
}

type Service struct {
	repo Repository
	ttl  time.Duration
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Service{
		repo: repo,
		ttl:  ttl,
		log:  log.With(slog.String("component", "session_service")),
		now:  time.Now,
	}
}

// Activate issues a new client token for the user and stores its hash as an active session.
func (s *Service) Activate(ctx context.Context, userID int) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(raw)

	expiresAt := s.now().Add(s.ttl)
	if err := s.repo.Create(ctx, userID, hashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.log.Debug("session activated", "user_id", userID, "expires_at", expiresAt)

	return token, nil
}

func (s *Service) Deactivate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.repo.Deactivate(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}

	return nil
}

// Current reports which user the token is authenticated as. An unknown,
// deactivated or expired token yields ok == false and no error.
func (s *Service) Current(ctx context.Context, token string) (Session, bool, error) {
	if token == "" {
		return Session{}, false, nil
	}

	sess, err := s.repo.FindActive(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("find session: %w", err)
	}

	if !sess.IsActive || !sess.ExpiresAt.After(s.now()) {
		return Session{}, false, nil
	}

	return sess, true, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
