package amortization

import "math"

// Row - строка графика платежей
type Row struct {
	Month      int     `json:"month"`
	Payment    float64 `json:"payment"`
	Principal  float64 `json:"principal"`
	Interest   float64 `json:"interest"`
	Balance    float64 `json:"balance"`
	Cumulative float64 `json:"cumulative"`
}

// Schedule - полный график платежей с итогами
type Schedule struct {
	PaymentType    PaymentType  `json:"payment_type"`
	MonthlyPayment float64      `json:"monthly_payment"`
	LastPayment    float64      `json:"last_payment"`
	TotalPayment   float64      `json:"total_payment"`
	Overpayment    float64      `json:"overpayment"`
	InterestType   InterestType `json:"interest_type,omitempty"`
	WholeLoanTotal float64      `json:"whole_loan_total,omitempty"`
	Rows           []Row        `json:"rows"`
}

// Build проверяет параметры и строит помесячный график.
func Build(p Params) (Schedule, error) {
	if err := p.Validate(); err != nil {
		return Schedule{}, err
	}

	var (
		payments []float64
		err      error
	)

	rate := p.MonthlyRate()
	months := p.Months()

	switch p.PaymentType {
	case PaymentAnnuity:
		var payment float64
		payment, err = AnnuityPayment(p.Amount, rate, months)
		if err != nil {
			return Schedule{}, err
		}
		payments = make([]float64, months)
		for i := range payments {
			payments[i] = payment
		}
	case PaymentDifferentiated:
		payments, err = DifferentiatedSchedule(p.Amount, rate, months)
		if err != nil {
			return Schedule{}, err
		}
	}

	total, overpayment := TotalAndOverpayment(payments, p.Amount)

	s := Schedule{
		PaymentType:    p.PaymentType,
		MonthlyPayment: payments[0],
		LastPayment:    payments[len(payments)-1],
		TotalPayment:   total,
		Overpayment:    overpayment,
		Rows:           breakdown(p, payments),
	}

	switch p.InterestType {
	case InterestSimple:
		s.InterestType = p.InterestType
		s.WholeLoanTotal = SimpleInterestTotal(p.Amount, p.AnnualRate, p.TermYears)
	case InterestCompound:
		s.InterestType = p.InterestType
		s.WholeLoanTotal = CompoundInterestTotal(p.Amount, p.AnnualRate, p.TermYears)
	}

	return s, nil
}

// breakdown раскладывает платежи на основной долг и проценты. Доля долга и остаток
// считаются в замкнутой форме, поэтому сумма долей равна сумме кредита при любой ставке,
// а остаток после последнего платежа равен нулю.
func breakdown(p Params, payments []float64) []Row {
	rate := p.MonthlyRate()
	months := len(payments)
	cumulative := 0.0

	rows := make([]Row, 0, months)
	for i, payment := range payments {
		month := i + 1
		principal, balance := principalAndBalance(p, rate, months, month)
		cumulative += payment

		rows = append(rows, Row{
			Month:      month,
			Payment:    payment,
			Principal:  principal,
			Interest:   payment - principal,
			Balance:    balance,
			Cumulative: cumulative,
		})
	}

	return rows
}

// principalAndBalance - погашенная в месяце month доля долга и остаток после платежа.
// Аннуитет: P*r*(1+r)^(k-1)/((1+r)^n-1) и P*((1+r)^n-(1+r)^k)/((1+r)^n-1).
func principalAndBalance(p Params, rate float64, months, month int) (float64, float64) {
	if p.PaymentType == PaymentAnnuity && !isNearZero(rate, months) {
		growth := compoundGrowth(rate, months)
		principal := p.Amount * rate * math.Exp(float64(month-1)*math.Log1p(rate)) / growth
		balance := p.Amount * (growth - compoundGrowth(rate, month)) / growth
		return principal, balance
	}

	return p.Amount / float64(months), p.Amount * float64(months-month) / float64(months)
}
