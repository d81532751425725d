package krec

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kscalelabs/kclip/internal/system"
)

// Объединение записи с видео. Запись вкладывается в Matroska-контейнер как
// attachment рядом с видеопотоком: видео не перекодируется и не читается,
// байты записи не меняются. Метки uuid/task штампуются как метаданные
// контейнера и не трогают заголовок вложенной записи.

const (
	metaUUIDKey = "KREC_UUID"
	metaTaskKey = "KREC_TASK"
)

// statInput возвращает размер входного файла либо ошибку нужного вида.
func statInput(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("%w: stat %s: %v", ErrIo, path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", ErrIo, path)
	}
	return info.Size(), nil
}

// CombineWithVideo объединяет существующий видеофайл и сохранённую запись
// в один артефакт outputPath с метками uuid и task. Входы не изменяются;
// при любой ошибке частичного выходного файла не остаётся.
func CombineWithVideo(ctx context.Context, videoPath, recordingPath, outputPath, recUUID, task string) error {
	videoSize, err := statInput(videoPath)
	if err != nil {
		return err
	}
	recSize, err := statInput(recordingPath)
	if err != nil {
		return err
	}

	// Attachment-потоки поддерживает только Matroska.
	if ext := strings.ToLower(filepath.Ext(outputPath)); ext != ".mkv" {
		return fmt.Errorf("%w: container %q does not support data attachments, use .mkv", ErrCombine, ext)
	}

	ffmpeg, err := system.FindFFmpeg()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIo, err)
	}

	outDir := filepath.Dir(outputPath)
	if err := system.EnsureFreeSpace(outDir, uint64(videoSize+recSize)); err != nil {
		return fmt.Errorf("%w: %v", ErrIo, err)
	}

	// Пишем во временное имя в той же директории и переименовываем в конце:
	// читатель не должен увидеть наполовину записанный контейнер.
	tmp, err := os.CreateTemp(outDir, ".combine-*.mkv")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", ErrIo, outDir, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-attach", recordingPath,
		"-metadata:s:t:0", "mimetype=application/octet-stream",
		"-metadata:s:t:0", fmt.Sprintf("filename=%s.krec", recUUID),
		"-metadata", fmt.Sprintf("%s=%s", metaUUIDKey, recUUID),
		"-metadata", fmt.Sprintf("%s=%s", metaTaskKey, task),
		"-map", "0",
		"-c", "copy",
		tmpPath,
	}

	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: ffmpeg attach error: %v, output: %s", ErrCombine, err, string(out))
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename to %s: %v", ErrIo, outputPath, err)
	}
	return nil
}

// CombineKRec сохраняет запись во временный .krec-файл, объединяет его
// с видео и удаляет временный файл — и при успехе, и при ошибке.
// Пустой recUUID берётся из заголовка записи (или генерируется), пустой
// task — из заголовка.
func CombineKRec(ctx context.Context, r *KRec, videoPath, outputPath, recUUID, task string) error {
	if recUUID == "" {
		recUUID = r.Header().UUID
	}
	if recUUID == "" {
		recUUID = uuid.NewString()
	}
	if task == "" {
		task = r.Header().Task
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".kclip-*.tmp.krec")
	if err != nil {
		return fmt.Errorf("%w: create temp recording: %v", ErrIo, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := r.Save(tmpPath); err != nil {
		return err
	}
	return CombineWithVideo(ctx, videoPath, tmpPath, outputPath, recUUID, task)
}

// ExtractRecording извлекает вложенную запись из объединённого артефакта
// в outputPath. Обратная операция к CombineWithVideo; видеопоток
// не трогается.
func ExtractRecording(ctx context.Context, combinedPath, outputPath string) error {
	if _, err := statInput(combinedPath); err != nil {
		return err
	}

	ffmpeg, err := system.FindFFmpeg()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIo, err)
	}

	outDir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(outDir, ".extract-*.krec")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", ErrIo, outDir, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	// Имя занято, сам файл ffmpeg создаст заново.
	os.Remove(tmpPath)

	// ffmpeg выгружает attachment опцией входа и завершает работу с ошибкой
	// "At least one output file must be specified" — это ожидаемо, успех
	// определяется появлением непустого файла.
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-dump_attachment:t:0", tmpPath,
		"-i", combinedPath,
	}
	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	out, runErr := cmd.CombinedOutput()

	info, statErr := os.Stat(tmpPath)
	if statErr != nil || info.Size() == 0 {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: no attachment in %s (ffmpeg: %v, output: %s)",
			ErrCombine, combinedPath, runErr, string(out))
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename to %s: %v", ErrIo, outputPath, err)
	}
	return nil
}

// ProbeLabels читает метки uuid/task из метаданных объединённого артефакта.
func ProbeLabels(ctx context.Context, combinedPath string) (recUUID, task string, err error) {
	if _, err := statInput(combinedPath); err != nil {
		return "", "", err
	}

	ffprobe, err := system.FindFFprobe()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrIo, err)
	}

	cmd := exec.CommandContext(ctx, ffprobe, "-v", "error",
		"-show_entries", fmt.Sprintf("format_tags=%s,%s", metaUUIDKey, metaTaskKey),
		"-of", "default=noprint_wrappers=1", combinedPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", "", fmt.Errorf("%w: ffprobe error: %v, output: %s", ErrIo, err, string(out))
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "TAG:"))
		if v, ok := strings.CutPrefix(line, metaUUIDKey+"="); ok {
			recUUID = v
		}
		if v, ok := strings.CutPrefix(line, metaTaskKey+"="); ok {
			task = v
		}
	}
	return recUUID, task, nil
}
