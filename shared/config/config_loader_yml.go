package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// универсальная функция загрузки конфига из .yml файла (используем дженерики)
// fn - функция конструктор конфига со значениями по умолчанию
func LoadYAMLConfig[T any](configPath string, fn func() *T) (*T, error) {
	if fn == nil {
		return nil, errors.New("config constructor must not be nil")
	}

	// на этом этапе в config будут значения по умолчанию, заданные в конструкторе
	config := fn()

	// путь не задан - работаем на дефолтах
	if configPath == "" {
		return config, nil
	}

	// файла нет - тоже дефолты, без ошибки
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	// файл есть, но его не удалось прочитать или распарсить - это ошибка
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// поля, которых нет в файле, сохраняют значения по умолчанию
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	return config, nil
}
