// Package config — настройки CLI-инструмента kclip. Ядро библиотеки
// конфигурации не требует; здесь только удобства командной строки.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Директория, в которой combine ищет самое свежее видео,
	// если --video не задан.
	VideoDir string `yaml:"video_dir"`
	// Директория по умолчанию для выходных артефактов.
	OutputDir string `yaml:"output_dir"`
	// Метка задачи по умолчанию для combine.
	DefaultTask string `yaml:"default_task"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	return Config{
		VideoDir:  "input/video",
		OutputDir: "output",
	}
}

// DefaultPath возвращает стандартное расположение файла конфигурации.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kclip.yaml"
	}
	return filepath.Join(home, ".kclip.yaml")
}

// Load читает конфигурацию из YAML-файла. Отсутствующий файл — не ошибка:
// возвращаются значения по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Write сохраняет конфигурацию в YAML-файл.
func Write(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
