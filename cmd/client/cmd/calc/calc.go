package calc

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"loancalc/internal/domain/amortization"
)

// CalcCmd - родительская команда для работы с расчетами
var CalcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Кредитные расчеты",
	Long: `Предварительный расчет графика платежей, сохранение расчетов,
просмотр сохраненных и открытых по ссылке расчетов, выгрузка графика в CSV.`,
}

// loanFlags - параметры кредита, общие для preview и save
type loanFlags struct {
	amount       float64
	rate         float64
	years        int
	paymentType  string
	interestType string
}

func (f *loanFlags) register(fs *pflag.FlagSet) {
	fs.Float64VarP(&f.amount, "amount", "a", 0, "сумма кредита")
	fs.Float64VarP(&f.rate, "rate", "r", 0, "годовая ставка, %")
	fs.IntVarP(&f.years, "years", "y", 0, "срок кредита в годах")
	fs.StringVarP(&f.paymentType, "type", "t", string(amortization.PaymentAnnuity), "тип платежа (annuity, differentiated)")
	fs.StringVar(&f.interestType, "interest", "", "итог по всему кредиту (simple, compound)")
}

func (f *loanFlags) params() amortization.Params {
	return amortization.Params{
		Amount:       f.amount,
		AnnualRate:   f.rate,
		TermYears:    f.years,
		PaymentType:  amortization.PaymentType(f.paymentType),
		InterestType: amortization.InterestType(f.interestType),
	}
}

func markRequired(cmd *cobra.Command) {
	for _, name := range []string{"amount", "rate", "years"} {
		_ = cmd.MarkFlagRequired(name)
	}
}
