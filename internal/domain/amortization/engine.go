package amortization

import (
	"fmt"
	"math"
)

// nearZeroRate - при r*n меньше этого порога аннуитет неотличим от равных долей
// основного долга, формула только теряет точность.
const nearZeroRate = 1e-12

// AnnuityPayment - фиксированный ежемесячный платеж. При нулевой или исчезающе малой
// ставке долг делится на срок поровну.
func AnnuityPayment(principal, monthlyRate float64, months int) (float64, error) {
	if months <= 0 {
		return 0, fmt.Errorf("%w: term must be at least one month", ErrInvalidParams)
	}
	if isNearZero(monthlyRate, months) {
		return principal / float64(months), nil
	}

	growth := compoundGrowth(monthlyRate, months)

	return principal * monthlyRate * (growth + 1) / growth, nil
}

// DifferentiatedSchedule - платежи по месяцам: фиксированная доля долга
// плюс проценты на непогашенный остаток.
func DifferentiatedSchedule(principal, monthlyRate float64, months int) ([]float64, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: term must be at least one month", ErrInvalidParams)
	}

	principalPart := principal / float64(months)
	payments := make([]float64, 0, months)

	for month := 1; month <= months; month++ {
		remaining := principal * float64(months-month+1) / float64(months)
		payments = append(payments, principalPart+remaining*monthlyRate)
	}

	return payments, nil
}

// TotalAndOverpayment - сумма платежей и переплата сверх основного долга.
func TotalAndOverpayment(payments []float64, principal float64) (total, overpayment float64) {
	for _, p := range payments {
		total += p
	}

	return total, total - principal
}

// SimpleInterestTotal - сумма выплат по простому проценту за весь срок.
func SimpleInterestTotal(principal, annualPercent float64, years int) float64 {
	return principal + principal*(annualPercent/100)*float64(years)
}

// CompoundInterestTotal - сумма выплат по сложному проценту с ежегодной капитализацией.
func CompoundInterestTotal(principal, annualPercent float64, years int) float64 {
	return principal * math.Pow(1+annualPercent/100, float64(years))
}

// Round2 округляет до копеек. Только для вывода: внутри расчета ничего не округляется.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// compoundGrowth считает (1+r)^n - 1 без потери точности при малых r.
func compoundGrowth(monthlyRate float64, months int) float64 {
	return math.Expm1(float64(months) * math.Log1p(monthlyRate))
}

func isNearZero(monthlyRate float64, months int) bool {
	return monthlyRate*float64(months) < nearZeroRate
}
