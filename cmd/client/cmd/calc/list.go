package calc

import (
	"fmt"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список сохраненных расчетов",
	Long:  `Расчеты текущего пользователя, новые сверху.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		calcs, err := app.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка расчетов: %w", err)
		}

		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(cmd.OutOrStdout(), calcs)
		}
		return client.PrintCalculations(cmd.OutOrStdout(), calcs)
	},
}
