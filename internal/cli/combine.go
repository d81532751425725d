package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kscalelabs/kclip/internal/config"
	"github.com/kscalelabs/kclip/internal/system"
	"github.com/kscalelabs/kclip/krec"
)

func newCombineCmd(cfg *config.Config) *cobra.Command {
	var (
		videoPath     string
		recordingPath string
		outputPath    string
		recUUID       string
		task          string
	)

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Объединить запись с видео в один артефакт",
		Long: `Вкладывает сохранённую .krec-запись в Matroska-контейнер рядом с видео.
Видео не перекодируется; исходные файлы не изменяются.`,
		Example: `  kclip combine --recording run.krec --video cam.mp4 --output run.mkv
  kclip combine --recording run.krec --uuid abc-123 --task walk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if recordingPath == "" {
				return fmt.Errorf("--recording обязателен")
			}

			// Без --video берём самый свежий видеофайл из директории,
			// куда робот складывает съёмку.
			if videoPath == "" {
				latest, err := system.FindLatestVideo(cfg.VideoDir)
				if err != nil {
					return err
				}
				videoPath = latest
				fmt.Printf("[*] Выбрано видео: %s\n", videoPath)
			}

			// Метки по умолчанию берём из заголовка записи.
			r, err := krec.Load(recordingPath)
			if err != nil {
				return err
			}
			if recUUID == "" {
				recUUID = r.Header().UUID
			}
			if task == "" {
				task = r.Header().Task
				if task == "" {
					task = cfg.DefaultTask
				}
			}

			if outputPath == "" {
				base := strings.TrimSuffix(filepath.Base(recordingPath), filepath.Ext(recordingPath))
				outputPath = filepath.Join(cfg.OutputDir, base+".mkv")
				os.MkdirAll(cfg.OutputDir, 0755)
			}

			if err := krec.CombineWithVideo(cmd.Context(), videoPath, recordingPath, outputPath, recUUID, task); err != nil {
				return err
			}

			fmt.Printf("[*] Готово: %s (uuid=%s, task=%s)\n", outputPath, recUUID, task)
			return nil
		},
	}

	cmd.Flags().StringVar(&videoPath, "video", "", "путь к видео (по умолчанию: самый свежий файл в video_dir)")
	cmd.Flags().StringVar(&recordingPath, "recording", "", "путь к .krec-записи")
	cmd.Flags().StringVar(&outputPath, "output", "", "путь к выходному .mkv (если пусто, генерируется в output_dir)")
	cmd.Flags().StringVar(&recUUID, "uuid", "", "метка uuid (по умолчанию: из заголовка записи)")
	cmd.Flags().StringVar(&task, "task", "", "метка задачи (по умолчанию: из заголовка записи)")
	return cmd
}
