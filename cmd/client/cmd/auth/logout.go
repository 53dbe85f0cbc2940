package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Завершает сессию на сервере и удаляет сохраненный токен.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			if errors.Is(err, client.ErrNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Вы не авторизованы")
				return nil
			}
			// токен уже удален локально, сообщаем только о проблеме на сервере
			return fmt.Errorf("локальная сессия удалена, но сервер вернул ошибку: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Вы вышли из системы")
		return nil
	},
}
