package calc

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loancalc/cmd/client/cmd/types"
)

var outputPath string

var ExportCmd = &cobra.Command{
	Use:   "export <link>",
	Short: "Выгрузить график платежей в CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		data, err := app.Export(cmd.Context(), linkArg(args[0]))
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("ошибка записи файла: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "График сохранен в %s\n", outputPath)
		return nil
	},
}

// linkArg принимает как саму ссылку, так и полный URL вида .../share/<link>
func linkArg(arg string) string {
	arg = strings.TrimRight(strings.TrimSpace(arg), "/")
	if i := strings.LastIndex(arg, "/share/"); i >= 0 {
		arg = arg[i+len("/share/"):]
	}
	return arg
}

func init() {
	ExportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "файл для сохранения (по умолчанию stdout)")
}
