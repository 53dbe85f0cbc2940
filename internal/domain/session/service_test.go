package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) FindActive(ctx context.Context, tokenHash string) (Session, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(Session), args.Error(1)
}

func (m *MockRepository) Deactivate(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func TestService_Activate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, time.Hour, slog.Default())

	var storedHash string
	mockRepo.On("Create", mock.Anything, 123, mock.MatchedBy(func(hash string) bool {
		storedHash = hash
		return len(hash) == 64
	}), mock.MatchedBy(func(expiresAt time.Time) bool {
		return expiresAt.After(time.Now().Add(59 * time.Minute))
	})).Return(nil)

	token, err := service.Activate(context.Background(), 123)
	require.NoError(t, err)
	// base64 от 32 байт - 44 символа с паддингом
	assert.Len(t, token, 44)
	assert.Equal(t, hashToken(token), storedHash)
	assert.NotEqual(t, token, storedHash)

	mockRepo.AssertExpectations(t)
}

func TestService_Activate_UniqueTokens(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, 0, slog.Default())
	assert.Equal(t, DefaultTTL, service.ttl)

	mockRepo.On("Create", mock.Anything, 1, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	first, err := service.Activate(context.Background(), 1)
	require.NoError(t, err)
	second, err := service.Activate(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestService_Activate_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, time.Hour, slog.Default())

	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(errors.New("database error"))

	_, err := service.Activate(context.Background(), 123)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Current(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		token     string
		stored    Session
		repoErr   error
		wantOK    bool
		wantErr   bool
		skipMock  bool
		wantLogin string
	}{
		{
			name:      "active session",
			token:     "token",
			stored:    Session{UserID: 1, Login: "alice", IsActive: true, ExpiresAt: now.Add(time.Hour)},
			wantOK:    true,
			wantLogin: "alice",
		},
		{
			name:   "expired session",
			token:  "token",
			stored: Session{UserID: 1, Login: "alice", IsActive: true, ExpiresAt: now.Add(-time.Second)},
			wantOK: false,
		},
		{
			name:   "inactive session",
			token:  "token",
			stored: Session{UserID: 1, Login: "alice", IsActive: false, ExpiresAt: now.Add(time.Hour)},
			wantOK: false,
		},
		{
			name:    "unknown token",
			token:   "token",
			repoErr: ErrNotFound,
			wantOK:  false,
		},
		{
			name:    "repository failure",
			token:   "token",
			repoErr: errors.New("database error"),
			wantErr: true,
		},
		{
			name:     "empty token",
			token:    "",
			skipMock: true,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := NewService(mockRepo, time.Hour, slog.Default())
			service.now = func() time.Time { return now }

			if !tt.skipMock {
				mockRepo.On("FindActive", mock.Anything, hashToken(tt.token)).Return(tt.stored, tt.repoErr)
			}

			sess, ok, err := service.Current(context.Background(), tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLogin, sess.Login)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Deactivate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, time.Hour, slog.Default())

	mockRepo.On("Deactivate", mock.Anything, hashToken("token")).Return(nil)

	require.NoError(t, service.Deactivate(context.Background(), "token"))
	require.NoError(t, service.Deactivate(context.Background(), ""))

	mockRepo.AssertNumberOfCalls(t, "Deactivate", 1)
}

func TestService_Deactivate_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, time.Hour, slog.Default())

	mockRepo.On("Deactivate", mock.Anything, mock.AnythingOfType("string")).Return(errors.New("database error"))

	err := service.Deactivate(context.Background(), "token")
	assert.ErrorContains(t, err, "database error")
}
