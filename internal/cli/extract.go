package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kscalelabs/kclip/krec"
)

func newExtractCmd() *cobra.Command {
	var (
		outputPath string
		showLabels bool
	)

	cmd := &cobra.Command{
		Use:   "extract <артефакт.mkv>",
		Short: "Извлечь запись из объединённого артефакта",
		Example: `  kclip extract run.mkv
  kclip extract run.mkv --output run.krec --show-labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			combined := args[0]

			if outputPath == "" {
				base := strings.TrimSuffix(filepath.Base(combined), filepath.Ext(combined))
				outputPath = base + ".krec"
			}

			if err := krec.ExtractRecording(cmd.Context(), combined, outputPath); err != nil {
				return err
			}
			fmt.Printf("[*] Запись извлечена: %s\n", outputPath)

			if showLabels {
				recUUID, task, err := krec.ProbeLabels(cmd.Context(), combined)
				if err != nil {
					return err
				}
				fmt.Printf("[*] Метки: uuid=%s, task=%s\n", recUUID, task)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "путь к выходному .krec (по умолчанию: имя артефакта)")
	cmd.Flags().BoolVar(&showLabels, "show-labels", false, "показать метки uuid/task из метаданных контейнера")
	return cmd
}
