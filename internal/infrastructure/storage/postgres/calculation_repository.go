package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

const calculationColumns = `id, user_id, loan_amount, annual_interest_rate, loan_term_years,
	payment_type, total_payment, total_interest_paid, unique_link, created_at`

type CalculationRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCalculationRepository(pool *pgxpool.Pool, log *slog.Logger) *CalculationRepository {
	return &CalculationRepository{
		pool: pool,
		log:  log.With("component", "calculation_repository"),
	}
}

func (r *CalculationRepository) Create(ctx context.Context, calc *calculation.Calculation) (int, error) {
	const query = `
		INSERT INTO calculations (user_id, loan_amount, annual_interest_rate, loan_term_years,
			payment_type, total_payment, total_interest_paid, unique_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		calc.UserID, calc.LoanAmount, calc.AnnualInterestRate, calc.LoanTermYears,
		string(calc.PaymentType), calc.TotalPayment, calc.TotalInterestPaid, calc.UniqueLink,
	).Scan(&calc.ID, &calc.CreatedAt)

	switch {
	case err == nil:
		return calc.ID, nil
	case isViolation(err, codeForeignKeyViolation):
		return 0, calculation.ErrOwnerNotFound
	case isViolation(err, codeUniqueViolation):
		return 0, calculation.ErrLinkTaken
	default:
		r.log.Error("failed to create calculation", "user_id", calc.UserID, "error", err)
		return 0, fmt.Errorf("create calculation: %w", err)
	}
}

func (r *CalculationRepository) ListByUser(ctx context.Context, userID int) ([]calculation.Calculation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+calculationColumns+` FROM calculations WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		r.log.Error("failed to list calculations", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	calcs := []calculation.Calculation{}
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		calcs = append(calcs, calc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return calcs, nil
}

func (r *CalculationRepository) FindByLink(ctx context.Context, link string) (calculation.Calculation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+calculationColumns+` FROM calculations WHERE unique_link = $1`, link)

	calc, err := scanCalculation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calculation.Calculation{}, calculation.ErrNotFound
		}
		return calculation.Calculation{}, fmt.Errorf("find calculation: %w", err)
	}

	return calc, nil
}

func scanCalculation(row pgx.Row) (calculation.Calculation, error) {
	var (
		calc        calculation.Calculation
		paymentType string
	)

	err := row.Scan(
		&calc.ID, &calc.UserID, &calc.LoanAmount, &calc.AnnualInterestRate, &calc.LoanTermYears,
		&paymentType, &calc.TotalPayment, &calc.TotalInterestPaid, &calc.UniqueLink, &calc.CreatedAt,
	)
	calc.PaymentType = amortization.PaymentType(paymentType)

	return calc, err
}
