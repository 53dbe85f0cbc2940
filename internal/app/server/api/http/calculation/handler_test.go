package calculation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api/http/middleware/auth"
	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Calculate(params amortization.Params) (amortization.Schedule, error) {
	args := m.Called(params)
	return args.Get(0).(amortization.Schedule), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, userID int, params amortization.Params) (calculation.Calculation, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(calculation.Calculation), args.Error(1)
}

func (m *MockService) List(ctx context.Context, userID int) ([]calculation.Calculation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]calculation.Calculation), args.Error(1)
}

func (m *MockService) FindByLink(ctx context.Context, link string) (calculation.Calculation, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(calculation.Calculation), args.Error(1)
}

func (m *MockService) Shared(ctx context.Context, link string) (calculation.Calculation, amortization.Schedule, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(calculation.Calculation), args.Get(1).(amortization.Schedule), args.Error(2)
}

func (m *MockService) ExportCSV(ctx context.Context, link string) ([]byte, error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var request = map[string]any{
	"loan_amount":          1000000,
	"annual_interest_rate": 10,
	"loan_term_years":      1,
	"payment_type":         "annuity",
}

var params = amortization.Params{
	Amount:      1000000,
	AnnualRate:  10,
	TermYears:   1,
	PaymentType: amortization.PaymentAnnuity,
}

func TestHandler_Preview(t *testing.T) {
	t.Run("computes with the real engine", func(t *testing.T) {
		schedule, err := amortization.Build(params)
		require.NoError(t, err)

		svc := new(MockService)
		svc.On("Calculate", params).Return(schedule, nil)

		_, api := humatest.New(t)
		NewHandler(svc, slog.Default(), nil, nil).SetupRoutes(api)

		resp := api.Post("/api/v1/calculations/preview", request)

		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Contains(t, resp.Body.String(), `"payment_type":"annuity"`)
		assert.Contains(t, resp.Body.String(), `"rows":[`)
	})

	t.Run("invalid params", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Calculate", mock.Anything).Return(amortization.Schedule{}, amortization.ErrInvalidParams)

		_, api := humatest.New(t)
		NewHandler(svc, slog.Default(), nil, nil).SetupRoutes(api)

		resp := api.Post("/api/v1/calculations/preview", map[string]any{
			"loan_amount": -5, "annual_interest_rate": 10, "loan_term_years": 1, "payment_type": "annuity",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("unknown payment type rejected by schema", func(t *testing.T) {
		svc := new(MockService)

		_, api := humatest.New(t)
		NewHandler(svc, slog.Default(), nil, nil).SetupRoutes(api)

		resp := api.Post("/api/v1/calculations/preview", map[string]any{
			"loan_amount": 1000, "annual_interest_rate": 10, "loan_term_years": 1, "payment_type": "balloon",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		svc.AssertNotCalled(t, "Calculate", mock.Anything)
	})
}

func TestHandler_Save(t *testing.T) {
	ctx := auth.WithUserID(context.Background(), 4)

	t.Run("saved", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Save", mock.Anything, 4, params).
			Return(calculation.Calculation{ID: 1, UserID: 4, UniqueLink: "abc"}, nil)

		h := NewHandler(svc, slog.Default(), nil, nil)
		input := &saveInput{}
		input.Body = CalculationRequest{LoanAmount: 1000000, AnnualInterestRate: 10, LoanTermYears: 1, PaymentType: "annuity"}

		out, err := h.save(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "/api/v1/share/abc", out.Location)
		assert.Equal(t, "/api/v1/share/abc", out.Body.SharePath)
		assert.Equal(t, 1, out.Body.Calculation.ID)
	})

	t.Run("owner vanished", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Save", mock.Anything, 4, mock.Anything).Return(calculation.Calculation{}, calculation.ErrOwnerNotFound)

		_, err := NewHandler(svc, slog.Default(), nil, nil).save(ctx, &saveInput{})

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.GetStatus())
	})

	t.Run("no auth context", func(t *testing.T) {
		_, err := NewHandler(new(MockService), slog.Default(), nil, nil).save(context.Background(), &saveInput{})
		assert.Error(t, err)
	})
}

func TestHandler_List(t *testing.T) {
	ctx := auth.WithUserID(context.Background(), 4)

	svc := new(MockService)
	svc.On("List", mock.Anything, 4).Return([]calculation.Calculation{{ID: 1}, {ID: 2}}, nil).Once()
	svc.On("List", mock.Anything, 4).Return([]calculation.Calculation{}, errors.New("db down")).Once()

	h := NewHandler(svc, slog.Default(), nil, nil)

	out, err := h.list(ctx, &struct{}{})
	require.NoError(t, err)
	assert.Len(t, out.Body.Calculations, 2)

	_, err = h.list(ctx, &struct{}{})
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.GetStatus())
}
