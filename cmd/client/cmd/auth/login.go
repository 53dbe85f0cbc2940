package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var loginName string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему LoanCalc",
	Long: `Аутентификация на сервере LoanCalc.

После входа токен сессии сохраняется локально для последующих команд.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		prompt := client.NewPrompter(os.Stdin, out)

		login := loginName
		if login == "" {
			if login, err = prompt.Line("Логин: "); err != nil {
				return err
			}
		}
		password, err := prompt.Password("Пароль: ")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		res, err := app.Login(ctx, login, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		if types.JSONOutput(cmd.Context()) {
			return client.PrintJSON(out, res)
		}

		fmt.Fprintln(out, "✅ Вход выполнен успешно!")
		if res.ExpiresIn > 0 {
			fmt.Fprintf(out, "Сессия действительна %s\n", time.Duration(res.ExpiresIn)*time.Second)
		}

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginName, "login", "l", "", "логин (иначе будет запрошен)")
}
