package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loancalc/cmd/client/cmd/auth"
	"loancalc/cmd/client/cmd/calc"
	"loancalc/cmd/client/cmd/types"
	"loancalc/internal/app/client"
	"loancalc/internal/app/client/config"
	"loancalc/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "loancalc",
	Short: "LoanCalc - клиент кредитного калькулятора",
	Long: `LoanCalc рассчитывает график платежей по кредиту (аннуитетный или
дифференцированный), сохраняет расчеты на сервере и выдает ссылки,
по которым расчет может открыть кто угодно.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаги командной строки важнее конфига
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log := logger.NewCLI(debug)
	log.Debug("Конфигурация загружена", "server", cfg.BaseURL(), "config_dir", cfg.ConfigDir)

	app := client.New(cfg, log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, types.ClientAppKey, app)
	ctx = context.WithValue(ctx, types.OutputJSONKey, jsonOutput)
	cmd.SetContext(ctx)

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера LoanCalc")

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoAmICmd)

	rootCmd.AddCommand(calc.CalcCmd)
	calc.CalcCmd.AddCommand(calc.PreviewCmd)
	calc.CalcCmd.AddCommand(calc.SaveCmd)
	calc.CalcCmd.AddCommand(calc.ListCmd)
	calc.CalcCmd.AddCommand(calc.ViewCmd)
	calc.CalcCmd.AddCommand(calc.ExportCmd)
}
