// Package storagetest проверяет одинаковое поведение репозиториев на всех драйверах.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
	"loancalc/internal/domain/session"
	"loancalc/internal/domain/user"
)

type Repositories struct {
	Users        user.Repository
	Sessions     session.Repository
	Calculations calculation.Repository
}

// Run прогоняет общие сценарии. Логины уникальны на запуск, поэтому база может быть общей.
func Run(t *testing.T, repos Repositories) {
	t.Helper()
	suffix := uuid.NewString()[:8]

	t.Run("users", func(t *testing.T) { testUsers(t, repos, suffix) })
	t.Run("sessions", func(t *testing.T) { testSessions(t, repos, suffix) })
	t.Run("calculations", func(t *testing.T) { testCalculations(t, repos, suffix) })
}

func testUsers(t *testing.T, repos Repositories, suffix string) {
	ctx := context.Background()
	login := "alice_" + suffix

	id, err := repos.Users.Create(ctx, login, "hash-1")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = repos.Users.Create(ctx, login, "hash-2")
	assert.ErrorIs(t, err, user.ErrAlreadyExists)

	u, err := repos.Users.FindByLogin(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, login, u.Login)
	assert.Equal(t, "hash-1", u.Password)

	_, err = repos.Users.FindByLogin(ctx, "ghost_"+suffix)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func testSessions(t *testing.T, repos Repositories, suffix string) {
	ctx := context.Background()
	login := "bob_" + suffix

	userID, err := repos.Users.Create(ctx, login, "hash")
	require.NoError(t, err)

	active := "active-" + suffix
	expired := "expired-" + suffix
	require.NoError(t, repos.Sessions.Create(ctx, userID, active, time.Now().Add(time.Hour)))
	require.NoError(t, repos.Sessions.Create(ctx, userID, expired, time.Now().Add(-time.Hour)))

	sess, err := repos.Sessions.FindActive(ctx, active)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, login, sess.Login)
	assert.True(t, sess.IsActive)

	_, err = repos.Sessions.FindActive(ctx, expired)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = repos.Sessions.FindActive(ctx, "unknown-"+suffix)
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, repos.Sessions.Deactivate(ctx, active))
	_, err = repos.Sessions.FindActive(ctx, active)
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.NoError(t, repos.Sessions.Deactivate(ctx, "unknown-"+suffix))
}

func testCalculations(t *testing.T, repos Repositories, suffix string) {
	ctx := context.Background()

	ownerID, err := repos.Users.Create(ctx, "carol_"+suffix, "hash")
	require.NoError(t, err)
	otherID, err := repos.Users.Create(ctx, "dave_"+suffix, "hash")
	require.NoError(t, err)

	calcs, err := repos.Calculations.ListByUser(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, calcs)

	first := newCalculation(ownerID, amortization.PaymentAnnuity)
	id, err := repos.Calculations.Create(ctx, &first)
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := newCalculation(ownerID, amortization.PaymentDifferentiated)
	_, err = repos.Calculations.Create(ctx, &second)
	require.NoError(t, err)

	duplicate := newCalculation(otherID, amortization.PaymentAnnuity)
	duplicate.UniqueLink = first.UniqueLink
	_, err = repos.Calculations.Create(ctx, &duplicate)
	assert.ErrorIs(t, err, calculation.ErrLinkTaken)

	orphan := newCalculation(1<<30, amortization.PaymentAnnuity)
	_, err = repos.Calculations.Create(ctx, &orphan)
	assert.ErrorIs(t, err, calculation.ErrOwnerNotFound)

	calcs, err = repos.Calculations.ListByUser(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, calcs, 2)
	assert.Equal(t, first.UniqueLink, calcs[0].UniqueLink)
	assert.Equal(t, second.UniqueLink, calcs[1].UniqueLink)
	assert.Equal(t, amortization.PaymentDifferentiated, calcs[1].PaymentType)

	found, err := repos.Calculations.FindByLink(ctx, first.UniqueLink)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, ownerID, found.UserID)
	assert.Equal(t, first.LoanAmount, found.LoanAmount)
	assert.Equal(t, first.TotalInterestPaid, found.TotalInterestPaid)

	_, err = repos.Calculations.FindByLink(ctx, uuid.NewString())
	assert.ErrorIs(t, err, calculation.ErrNotFound)
}

func newCalculation(userID int, paymentType amortization.PaymentType) calculation.Calculation {
	return calculation.Calculation{
		UserID:             userID,
		LoanAmount:         1_000_000,
		AnnualInterestRate: 10,
		LoanTermYears:      1,
		PaymentType:        paymentType,
		TotalPayment:       1_054_990.65,
		TotalInterestPaid:  54_990.65,
		UniqueLink:         uuid.NewString(),
	}
}
