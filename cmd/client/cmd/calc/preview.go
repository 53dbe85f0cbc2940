package calc

import (
	"fmt"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var (
	previewFlags loanFlags
	withSchedule bool
)

var PreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Рассчитать график без сохранения",
	Example: `  loancalc calc preview --amount 1000000 --rate 10 --years 5
  loancalc calc preview -a 500000 -r 7.5 -y 3 --type differentiated --schedule`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		s, err := app.Preview(cmd.Context(), previewFlags.params())
		if err != nil {
			return fmt.Errorf("ошибка расчета: %w", err)
		}

		out := cmd.OutOrStdout()
		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(out, s)
		}

		client.PrintSummary(out, s)
		if withSchedule {
			fmt.Fprintln(out)
			return client.PrintSchedule(out, s)
		}
		return nil
	},
}

func init() {
	previewFlags.register(PreviewCmd.Flags())
	PreviewCmd.Flags().BoolVarP(&withSchedule, "schedule", "s", false, "показать помесячный график")
	markRequired(PreviewCmd)
}
