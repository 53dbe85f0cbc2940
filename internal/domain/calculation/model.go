package calculation

import (
	"time"

	"loancalc/internal/domain/amortization"
)

// Calculation - сохраненный расчет. После создания не изменяется.
type Calculation struct {
	ID                 int                      `json:"id"`
	UserID             int                      `json:"user_id"`
	LoanAmount         float64                  `json:"loan_amount"`
	AnnualInterestRate float64                  `json:"annual_interest_rate"`
	LoanTermYears      int                      `json:"loan_term_years"`
	PaymentType        amortization.PaymentType `json:"payment_type"`
	TotalPayment       float64                  `json:"total_payment"`
	TotalInterestPaid  float64                  `json:"total_interest_paid"`
	UniqueLink         string                   `json:"unique_link"`
	CreatedAt          time.Time                `json:"created_at"`
}

// Params восстанавливает параметры расчета для повторного построения графика.
func (c Calculation) Params() amortization.Params {
	return amortization.Params{
		Amount:      c.LoanAmount,
		AnnualRate:  c.AnnualInterestRate,
		TermYears:   c.LoanTermYears,
		PaymentType: c.PaymentType,
	}
}
