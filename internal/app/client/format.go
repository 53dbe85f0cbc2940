package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

// FormatMoney округляет до копеек и разбивает целую часть на группы по три цифры.
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "." + frac
}

func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Round(4).String() + "%"
}

func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func PrintSummary(w io.Writer, s amortization.Schedule) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", bold("Тип платежа:"), paymentTypeTitle(s.PaymentType))
	if s.PaymentType == amortization.PaymentDifferentiated {
		fmt.Fprintf(w, "%s %s\n", bold("Первый платеж:"), FormatMoney(s.MonthlyPayment))
		fmt.Fprintf(w, "%s %s\n", bold("Последний платеж:"), FormatMoney(s.LastPayment))
	} else {
		fmt.Fprintf(w, "%s %s\n", bold("Ежемесячный платеж:"), FormatMoney(s.MonthlyPayment))
	}
	fmt.Fprintf(w, "%s %s\n", bold("Всего выплат:"), FormatMoney(s.TotalPayment))
	fmt.Fprintf(w, "%s %s\n", bold("Переплата:"), color.YellowString(FormatMoney(s.Overpayment)))

	switch s.InterestType {
	case amortization.InterestSimple:
		fmt.Fprintf(w, "%s %s\n", bold("Итог по простым процентам:"), FormatMoney(s.WholeLoanTotal))
	case amortization.InterestCompound:
		fmt.Fprintf(w, "%s %s\n", bold("Итог по сложным процентам:"), FormatMoney(s.WholeLoanTotal))
	}
}

func PrintSchedule(w io.Writer, s amortization.Schedule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, color.CyanString("Месяц")+"\tПлатеж\tОсновной долг\tПроценты\tОстаток\t")
	for _, row := range s.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			row.Month,
			FormatMoney(row.Payment),
			FormatMoney(row.Principal),
			FormatMoney(row.Interest),
			FormatMoney(row.Balance),
		)
	}
	return tw.Flush()
}

func PrintCalculations(w io.Writer, calcs []calculation.Calculation) error {
	if len(calcs) == 0 {
		fmt.Fprintln(w, "Сохраненных расчетов нет")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, color.CyanString("ID")+"\tСумма\tСтавка\tСрок\tТип\tПереплата\tСсылка")
	for _, c := range calcs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d л.\t%s\t%s\t%s\n",
			c.ID,
			FormatMoney(c.LoanAmount),
			FormatPercent(c.AnnualInterestRate),
			c.LoanTermYears,
			paymentTypeTitle(c.PaymentType),
			FormatMoney(c.TotalInterestPaid),
			c.UniqueLink,
		)
	}
	return tw.Flush()
}

func paymentTypeTitle(t amortization.PaymentType) string {
	switch t {
	case amortization.PaymentAnnuity:
		return "аннуитетный"
	case amortization.PaymentDifferentiated:
		return "дифференцированный"
	default:
		return string(t)
	}
}
