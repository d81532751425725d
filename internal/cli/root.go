// Package cli — команды инструмента kclip: инспекция записей, объединение
// с видео, извлечение и проверка целостности.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kscalelabs/kclip/internal/config"
)

// NewRootCmd собирает корневую команду kclip.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "kclip",
		Short: "Контейнер записи телеметрии робота",
		Long: `kclip работает с .krec-записями телеметрии робота: показывает их
содержимое, объединяет с видеозаписью в один .mkv-артефакт, извлекает
запись обратно и проверяет целостность файлов.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "путь к файлу конфигурации")

	root.AddCommand(
		newInfoCmd(),
		newCombineCmd(&cfg),
		newExtractCmd(),
		newVerifyCmd(),
	)

	return root
}
