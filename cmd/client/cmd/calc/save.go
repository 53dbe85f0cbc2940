package calc

import (
	"fmt"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var saveFlags loanFlags

var SaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Рассчитать и сохранить расчет",
	Long: `Сохраняет расчет в аккаунте и выдает ссылку,
по которой расчет доступен без авторизации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		res, err := app.Save(cmd.Context(), saveFlags.params())
		if err != nil {
			return fmt.Errorf("ошибка сохранения расчета: %w", err)
		}

		out := cmd.OutOrStdout()
		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(out, res)
		}

		c := res.Calculation
		fmt.Fprintf(out, "✅ Расчет #%d сохранен\n", c.ID)
		fmt.Fprintf(out, "Всего выплат: %s\n", client.FormatMoney(c.TotalPayment))
		fmt.Fprintf(out, "Переплата: %s\n", client.FormatMoney(c.TotalInterestPaid))
		fmt.Fprintf(out, "Ссылка: %s\n", app.ShareURL(c.UniqueLink))

		return nil
	},
}

func init() {
	saveFlags.register(SaveCmd.Flags())
	markRequired(SaveCmd)
}
