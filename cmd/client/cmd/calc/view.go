package calc

import (
	"fmt"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var viewSchedule bool

var ViewCmd = &cobra.Command{
	Use:   "view <link>",
	Short: "Открыть расчет по ссылке",
	Long:  `Показывает расчет по уникальной ссылке. Авторизация не нужна.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		shared, err := app.View(cmd.Context(), linkArg(args[0]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(out, shared)
		}

		c := shared.Calculation
		fmt.Fprintf(out, "Сумма: %s, ставка: %s, срок: %d л.\n",
			client.FormatMoney(c.LoanAmount), client.FormatPercent(c.AnnualInterestRate), c.LoanTermYears)
		fmt.Fprintf(out, "Создан: %s\n\n", c.CreatedAt.Local().Format("2006-01-02 15:04"))
		client.PrintSummary(out, shared.Schedule)

		if viewSchedule {
			fmt.Fprintln(out)
			return client.PrintSchedule(out, shared.Schedule)
		}
		return nil
	},
}

func init() {
	ViewCmd.Flags().BoolVarP(&viewSchedule, "schedule", "s", false, "показать помесячный график")
}
