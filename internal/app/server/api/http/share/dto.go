package share

import (
	"time"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

type linkInput struct {
	Link string `path:"link" doc:"Ссылка на расчет (UUID)"`
}

type viewOutput struct {
	Body ViewResponse
}

// SharedCalculation - публичное представление расчета, без данных владельца
type SharedCalculation struct {
	LoanAmount         float64                  `json:"loan_amount"`
	AnnualInterestRate float64                  `json:"annual_interest_rate"`
	LoanTermYears      int                      `json:"loan_term_years"`
	PaymentType        amortization.PaymentType `json:"payment_type"`
	TotalPayment       float64                  `json:"total_payment"`
	TotalInterestPaid  float64                  `json:"total_interest_paid"`
	UniqueLink         string                   `json:"unique_link"`
	CreatedAt          time.Time                `json:"created_at"`
}

type ViewResponse struct {
	Calculation SharedCalculation     `json:"calculation"`
	Schedule    amortization.Schedule `json:"schedule"`
}

type csvOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func toShared(c calculation.Calculation) SharedCalculation {
	return SharedCalculation{
		LoanAmount:         c.LoanAmount,
		AnnualInterestRate: c.AnnualInterestRate,
		LoanTermYears:      c.LoanTermYears,
		PaymentType:        c.PaymentType,
		TotalPayment:       c.TotalPayment,
		TotalInterestPaid:  c.TotalInterestPaid,
		UniqueLink:         c.UniqueLink,
		CreatedAt:          c.CreatedAt,
	}
}
