package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kscalelabs/kclip/krec"
)

func newInfoCmd() *cobra.Command {
	var frame int

	cmd := &cobra.Command{
		Use:   "info <файл.krec>",
		Short: "Показать содержимое записи",
		Example: `  kclip info recording.krec
  kclip info recording.krec --frame 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := krec.Load(args[0])
			if err != nil {
				return err
			}

			if frame >= 0 {
				out, err := r.DisplayFrame(frame)
				if err != nil {
					return err
				}
				fmt.Print(out)
				return nil
			}

			fmt.Print(r.Display())
			return nil
		},
	}

	cmd.Flags().IntVar(&frame, "frame", -1, "показать подробности кадра с этим индексом")
	return cmd
}
