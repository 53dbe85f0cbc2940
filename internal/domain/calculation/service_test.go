package calculation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/amortization"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, calc *Calculation) (int, error) {
	args := m.Called(ctx, calc)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int) ([]Calculation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Calculation), args.Error(1)
}

func (m *MockRepository) FindByLink(ctx context.Context, link string) (Calculation, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(Calculation), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockArchive) Download(ctx context.Context, key string) ([]byte, string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

var annuityParams = amortization.Params{
	Amount:      1_000_000,
	AnnualRate:  10,
	TermYears:   1,
	PaymentType: amortization.PaymentAnnuity,
}

func storedCalculation(link string) Calculation {
	return Calculation{
		ID:                 5,
		UserID:             1,
		LoanAmount:         1_000_000,
		AnnualInterestRate: 10,
		LoanTermYears:      1,
		PaymentType:        amortization.PaymentAnnuity,
		TotalPayment:       1_054_990.65,
		TotalInterestPaid:  54_990.65,
		UniqueLink:         link,
	}
}

func TestService_Calculate(t *testing.T) {
	service := NewService(new(MockRepository), slog.Default())

	schedule, err := service.Calculate(annuityParams)
	require.NoError(t, err)
	assert.Equal(t, 87915.89, amortization.Round2(schedule.MonthlyPayment))

	_, err = service.Calculate(amortization.Params{Amount: -1, TermYears: 1, PaymentType: amortization.PaymentAnnuity})
	assert.ErrorIs(t, err, amortization.ErrInvalidParams)
}

func TestService_Save(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *Calculation) bool {
		_, err := uuid.Parse(c.UniqueLink)
		return err == nil &&
			c.UserID == 1 &&
			c.LoanAmount == 1_000_000 &&
			c.PaymentType == amortization.PaymentAnnuity &&
			amortization.Round2(c.TotalInterestPaid) == 54990.65
	})).Return(10, nil)

	calc, err := service.Save(context.Background(), 1, annuityParams)
	require.NoError(t, err)
	assert.Equal(t, 10, calc.ID)
	assert.NotEmpty(t, calc.UniqueLink)
	assert.InDelta(t, calc.LoanAmount+calc.TotalInterestPaid, calc.TotalPayment, 1e-6)

	mockRepo.AssertExpectations(t)
}

func TestService_Save_InvalidParams(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Save(context.Background(), 1, amortization.Params{Amount: 1000, TermYears: 0, PaymentType: amortization.PaymentAnnuity})
	assert.ErrorIs(t, err, amortization.ErrInvalidParams)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Save_OwnerMissing(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(0, ErrOwnerNotFound)

	_, err := service.Save(context.Background(), 42, annuityParams)
	assert.ErrorIs(t, err, ErrOwnerNotFound)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestService_Save_RetriesLinkCollision(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	links := []string{"first", "second"}
	service.newLink = func() string {
		link := links[0]
		links = links[1:]
		return link
	}

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *Calculation) bool { return c.UniqueLink == "first" })).
		Return(0, ErrLinkTaken).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *Calculation) bool { return c.UniqueLink == "second" })).
		Return(3, nil).Once()

	calc, err := service.Save(context.Background(), 1, annuityParams)
	require.NoError(t, err)
	assert.Equal(t, "second", calc.UniqueLink)
	assert.Equal(t, 3, calc.ID)
}

func TestService_Save_GivesUpAfterCollisions(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(0, ErrLinkTaken)

	_, err := service.Save(context.Background(), 1, annuityParams)
	assert.ErrorIs(t, err, ErrLinkTaken)
	mockRepo.AssertNumberOfCalls(t, "Create", linkAttempts)
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("ListByUser", mock.Anything, 1).Return([]Calculation{{ID: 1}, {ID: 2}}, nil)
	mockRepo.On("ListByUser", mock.Anything, 2).Return(nil, nil)
	mockRepo.On("ListByUser", mock.Anything, 3).Return(nil, errors.New("database error"))

	calcs, err := service.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, calcs, 2)

	calcs, err = service.List(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, calcs)
	assert.Empty(t, calcs)

	_, err = service.List(context.Background(), 3)
	assert.ErrorContains(t, err, "database error")
}

func TestService_FindByLink(t *testing.T) {
	link := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())
		mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)

		calc, err := service.FindByLink(context.Background(), link)
		require.NoError(t, err)
		assert.Equal(t, storedCalculation(link), calc)
	})

	t.Run("unknown link", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())
		mockRepo.On("FindByLink", mock.Anything, link).Return(Calculation{}, ErrNotFound)

		_, err := service.FindByLink(context.Background(), link)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed link skips store", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		_, err := service.FindByLink(context.Background(), "not-a-link")
		assert.ErrorIs(t, err, ErrNotFound)
		mockRepo.AssertNotCalled(t, "FindByLink", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())
		mockRepo.On("FindByLink", mock.Anything, link).Return(Calculation{}, errors.New("database error"))

		_, err := service.FindByLink(context.Background(), link)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestService_FindByLink_Cache(t *testing.T) {
	link := uuid.NewString()
	key := cacheKeyPrefix + link

	t.Run("miss fills cache", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		service := NewService(mockRepo, slog.Default(), WithCache(mockCache, time.Minute))

		mockCache.On("Get", mock.Anything, key).Return("", false)
		mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)
		mockCache.On("Set", mock.Anything, key, mock.AnythingOfType("string"), time.Minute).Return(nil)

		_, err := service.FindByLink(context.Background(), link)
		require.NoError(t, err)

		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("hit skips store", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		service := NewService(mockRepo, slog.Default(), WithCache(mockCache, 0))
		assert.Equal(t, DefaultCacheTTL, service.cacheTTL)

		raw, err := json.Marshal(storedCalculation(link))
		require.NoError(t, err)
		mockCache.On("Get", mock.Anything, key).Return(string(raw), true)

		calc, err := service.FindByLink(context.Background(), link)
		require.NoError(t, err)
		assert.Equal(t, storedCalculation(link), calc)
		mockRepo.AssertNotCalled(t, "FindByLink", mock.Anything, mock.Anything)
	})

	t.Run("corrupted entry falls back to store", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCache := new(MockCache)
		service := NewService(mockRepo, slog.Default(), WithCache(mockCache, time.Minute))

		mockCache.On("Get", mock.Anything, key).Return("{broken", true)
		mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)
		mockCache.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(errors.New("redis down"))

		calc, err := service.FindByLink(context.Background(), link)
		require.NoError(t, err)
		assert.Equal(t, 5, calc.ID)
	})
}

func TestService_Shared(t *testing.T) {
	link := uuid.NewString()
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())
	mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)

	calc, schedule, err := service.Shared(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, link, calc.UniqueLink)
	assert.Len(t, schedule.Rows, 12)
	assert.Equal(t, amortization.Round2(calc.TotalInterestPaid), amortization.Round2(schedule.Overpayment))
}

func TestService_ExportCSV(t *testing.T) {
	link := uuid.NewString()

	t.Run("without archive", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())
		mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)

		data, err := service.ExportCSV(context.Background(), link)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 13)
		assert.Equal(t, "month,payment,principal,interest,balance,cumulative", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "1,87915.89,79582.55,8333.33,"))
		assert.True(t, strings.HasPrefix(lines[12], "12,87915.89,"))
		assert.Contains(t, lines[12], ",0.00,1054990.65")
	})

	t.Run("archive miss uploads", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockArchive := new(MockArchive)
		service := NewService(mockRepo, slog.Default(), WithArchive(mockArchive))

		key := archiveKey(link)
		mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)
		mockArchive.On("Download", mock.Anything, key).Return(nil, "", errors.New("no such key"))
		mockArchive.On("Upload", mock.Anything, key, mock.Anything, "text/csv").Return(nil)

		data, err := service.ExportCSV(context.Background(), link)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		mockArchive.AssertExpectations(t)
	})

	t.Run("archive hit", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockArchive := new(MockArchive)
		service := NewService(mockRepo, slog.Default(), WithArchive(mockArchive))

		mockRepo.On("FindByLink", mock.Anything, link).Return(storedCalculation(link), nil)
		mockArchive.On("Download", mock.Anything, archiveKey(link)).Return([]byte("archived"), "text/csv", nil)

		data, err := service.ExportCSV(context.Background(), link)
		require.NoError(t, err)
		assert.Equal(t, "archived", string(data))
		mockArchive.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown link", func(t *testing.T) {
		service := NewService(new(MockRepository), slog.Default())

		_, err := service.ExportCSV(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
