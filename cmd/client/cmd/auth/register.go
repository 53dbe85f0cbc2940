package auth

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере LoanCalc.

После регистрации войдите в систему, чтобы сохранять расчеты.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		prompt := client.NewPrompter(os.Stdin, out)

		fmt.Fprintln(out, "=== Регистрация нового пользователя ===")

		login, err := prompt.Line("Логин: ")
		if err != nil {
			return err
		}
		password, err := prompt.Password("Пароль: ")
		if err != nil {
			return err
		}
		confirm, err := prompt.Password("Повторите пароль: ")
		if err != nil {
			return err
		}

		if password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		res, err := app.Register(cmd.Context(), login, password, confirm)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(out, res)
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "✅ Пользователь %s зарегистрирован (id %d)\n", res.Login, res.UserID)
		fmt.Fprintln(out, "Теперь войдите в систему: loancalc auth login")

		return nil
	},
}
