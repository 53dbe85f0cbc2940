package amortization

import "fmt"

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 50.0 // % годовых
	MaxTermYears    = 50
	MinTermYears    = 1
	MonthsPerYear   = 12
)

// Params - входные параметры расчета
type Params struct {
	Amount       float64      `json:"loan_amount"`
	AnnualRate   float64      `json:"annual_interest_rate"`
	TermYears    int          `json:"loan_term_years"`
	PaymentType  PaymentType  `json:"payment_type"`
	InterestType InterestType `json:"interest_type,omitempty"`
}

func (p Params) Validate() error {
	if p.Amount <= 0 {
		return fmt.Errorf("%w: loan amount must be positive", ErrInvalidParams)
	}
	if p.Amount > MaxLoanAmount {
		return fmt.Errorf("%w: loan amount exceeds %.2f", ErrInvalidParams, MaxLoanAmount)
	}
	if p.AnnualRate < 0 {
		return fmt.Errorf("%w: interest rate must not be negative", ErrInvalidParams)
	}
	if p.AnnualRate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate exceeds %.2f%%", ErrInvalidParams, MaxInterestRate)
	}
	if p.TermYears < MinTermYears {
		return fmt.Errorf("%w: loan term must be at least %d year", ErrInvalidParams, MinTermYears)
	}
	if p.TermYears > MaxTermYears {
		return fmt.Errorf("%w: loan term exceeds %d years", ErrInvalidParams, MaxTermYears)
	}
	if err := p.PaymentType.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	return p.InterestType.Validate()
}

func (p Params) MonthlyRate() float64 {
	return MonthlyRate(p.AnnualRate)
}

func (p Params) Months() int {
	return p.TermYears * MonthsPerYear
}

// MonthlyRate переводит годовую ставку в процентах в месячную долю.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / MonthsPerYear
}
