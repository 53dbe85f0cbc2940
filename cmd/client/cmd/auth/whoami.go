package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var WhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		me, err := app.WhoAmI(cmd.Context())
		if err != nil {
			return err
		}

		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(cmd.OutOrStdout(), me)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", me.Login, me.UserID)
		return nil
	},
}
