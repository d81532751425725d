package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kscalelabs/kclip/krec"
)

func newVerifyCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "verify <файл.krec>...",
		Short: "Проверить целостность записей",
		Long: `Загружает каждый файл целиком и сообщает, читается ли он. Файлы
независимы, поэтому проверяются параллельно.`,
		Example: `  kclip verify recording.krec
  kclip verify logs/*.krec`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 {
				workers = 1
			}
			var g errgroup.Group
			g.SetLimit(workers)

			var mu sync.Mutex
			failed := 0

			for _, path := range args {
				path := path
				g.Go(func() error {
					r, err := krec.Load(path)

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						failed++
						fmt.Printf("[-] %s: %v\n", path, err)
						return nil
					}
					fmt.Printf("[*] %s: OK, %d кадров, uuid=%s\n", path, r.FrameCount(), r.Header().UUID)
					return nil
				})
			}
			g.Wait()

			if failed > 0 {
				return fmt.Errorf("повреждено файлов: %d из %d", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "число параллельных проверок")
	return cmd
}
