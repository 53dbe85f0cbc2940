package calculation

import (
	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

type CalculationRequest struct {
	LoanAmount         float64 `json:"loan_amount" doc:"Сумма кредита" example:"1000000"`
	AnnualInterestRate float64 `json:"annual_interest_rate" doc:"Годовая ставка, %" example:"10"`
	LoanTermYears      int     `json:"loan_term_years" doc:"Срок, лет" example:"5"`
	PaymentType        string  `json:"payment_type" enum:"annuity,differentiated" doc:"Тип платежа"`
	InterestType       string  `json:"interest_type,omitempty" required:"false" doc:"Дополнительный расчет по всему кредиту: simple или compound"`
}

func (r CalculationRequest) Params() amortization.Params {
	return amortization.Params{
		Amount:       r.LoanAmount,
		AnnualRate:   r.AnnualInterestRate,
		TermYears:    r.LoanTermYears,
		PaymentType:  amortization.PaymentType(r.PaymentType),
		InterestType: amortization.InterestType(r.InterestType),
	}
}

type previewInput struct {
	Body CalculationRequest
}

type previewOutput struct {
	Body amortization.Schedule
}

type saveInput struct {
	Body CalculationRequest
}

type saveOutput struct {
	Location string `header:"Location"`
	Body     SaveResponse
}

type SaveResponse struct {
	Calculation calculation.Calculation `json:"calculation"`
	SharePath   string                  `json:"share_path"`
}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Calculations []calculation.Calculation `json:"calculations"`
}
