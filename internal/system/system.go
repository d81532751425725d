// Package system — взаимодействие с окружением: поиск бинарников ffmpeg,
// проверка свободного места, поиск свежих видеофайлов.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
)

// FindFFmpeg возвращает путь к ffmpeg или ошибку, если он не установлен.
func FindFFmpeg() (string, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg не найден в PATH: %w", err)
	}
	return path, nil
}

// FindFFprobe возвращает путь к ffprobe или ошибку, если он не установлен.
func FindFFprobe() (string, error) {
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		return "", fmt.Errorf("ffprobe не найден в PATH: %w", err)
	}
	return path, nil
}

// EnsureFreeSpace проверяет, что в директории dir доступно не менее need
// байт. Вызывается перед объединением с видео: копирование большого файла
// на заполненный диск лучше отклонить заранее.
func EnsureFreeSpace(dir string, need uint64) error {
	usage, err := disk.Usage(dir)
	if err != nil {
		// Не смогли спросить у системы — не блокируем операцию.
		return nil
	}
	if usage.Free < need {
		return fmt.Errorf("недостаточно места в %s: свободно %d байт, требуется %d", dir, usage.Free, need)
	}
	return nil
}

// FindLatestVideo возвращает самый свежий по времени изменения видеофайл
// в директории dir.
func FindLatestVideo(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".mp4", ".mkv", ".mov", ".avi", ".webm"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isVideo := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isVideo = true
				break
			}
		}
		if isVideo {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено видеофайлов", dir)
	}

	return latestFile, nil
}

// GetVideoDuration возвращает длительность видео в секундах через ffprobe.
func GetVideoDuration(ctx context.Context, path string) (float64, error) {
	ffprobe, err := FindFFprobe()
	if err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, ffprobe, "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}
