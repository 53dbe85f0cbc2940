package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

const calculationColumns = `id, user_id, loan_amount, annual_interest_rate, loan_term_years,
	payment_type, total_payment, total_interest_paid, unique_link, created_at`

type CalculationRepository struct {
	db  *sql.DB
	now func() time.Time
	log *slog.Logger
}

func NewCalculationRepository(db *sql.DB, log *slog.Logger) *CalculationRepository {
	return &CalculationRepository{
		db:  db,
		now: time.Now,
		log: log.With("component", "calculation_repository"),
	}
}

func (r *CalculationRepository) Create(ctx context.Context, calc *calculation.Calculation) (int, error) {
	const query = `
		INSERT INTO calculations (user_id, loan_amount, annual_interest_rate, loan_term_years,
			payment_type, total_payment, total_interest_paid, unique_link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdAt := r.now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		calc.UserID, calc.LoanAmount, calc.AnnualInterestRate, calc.LoanTermYears,
		string(calc.PaymentType), calc.TotalPayment, calc.TotalInterestPaid, calc.UniqueLink, createdAt,
	)

	switch {
	case err == nil:
	case isConstraint(err, sqlite3.ErrConstraintForeignKey):
		return 0, calculation.ErrOwnerNotFound
	case isConstraint(err, sqlite3.ErrConstraintUnique):
		return 0, calculation.ErrLinkTaken
	default:
		r.log.Error("failed to create calculation", "user_id", calc.UserID, "error", err)
		return 0, fmt.Errorf("create calculation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("calculation id: %w", err)
	}

	calc.ID = int(id)
	calc.CreatedAt = createdAt

	return calc.ID, nil
}

func (r *CalculationRepository) ListByUser(ctx context.Context, userID int) ([]calculation.Calculation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+calculationColumns+` FROM calculations WHERE user_id = ? ORDER BY id`, userID)
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
	row := r.db.QueryRowContext(ctx,
		`SELECT `+calculationColumns+` FROM calculations WHERE unique_link = ?`, link)

	calc, err := scanCalculation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calculation.Calculation{}, calculation.ErrNotFound
		}
		return calculation.Calculation{}, fmt.Errorf("find calculation: %w", err)
	}

	return calc, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (calculation.Calculation, error) {
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
