package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server ServerConfig
	Game   GameConfig
	RSVP   RSVPConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// GameConfig содержит настройки игрового движка
type GameConfig struct {
	// QuestionTimeLimitSec — окно приема ответов, в секундах
	QuestionTimeLimitSec int `mapstructure:"question_time_limit_sec"`

	// IntermissionSec — пауза между вопросами, в секундах
	IntermissionSec int `mapstructure:"intermission_sec"`

	// CatalogPath — путь к книге с вопросами; пусто — встроенный каталог
	CatalogPath string `mapstructure:"catalog_path"`

	// CatalogSheet — имя листа с вопросами
	CatalogSheet string `mapstructure:"catalog_sheet"`

	// PublicURL — адрес игры, который кодируется в QR для подключения команд
	PublicURL string `mapstructure:"public_url"`
}

// RSVPConfig содержит настройки RSVP-книги гостей
type RSVPConfig struct {
	// WorkbookPath — путь к книге с RSVP-записями; пусто — модуль выключен
	WorkbookPath string `mapstructure:"workbook_path"`

	// SheetName — имя листа с записями
	SheetName string `mapstructure:"sheet_name"`
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8090")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("game.question_time_limit_sec", 30)
	vip.SetDefault("game.intermission_sec", 30)
	vip.SetDefault("game.catalog_sheet", "Sheet1")
	vip.SetDefault("rsvp.sheet_name", "Sheet1")

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	vip.BindEnv("game.question_time_limit_sec", "GAME_QUESTION_TIME_LIMIT_SEC")
	vip.BindEnv("game.intermission_sec", "GAME_INTERMISSION_SEC")
	vip.BindEnv("game.catalog_path", "GAME_CATALOG_PATH")
	vip.BindEnv("game.catalog_sheet", "GAME_CATALOG_SHEET")
	vip.BindEnv("game.public_url", "GAME_PUBLIC_URL")

	vip.BindEnv("rsvp.workbook_path", "RSVP_WORKBOOK_PATH")
	vip.BindEnv("rsvp.sheet_name", "RSVP_SHEET_NAME")

	// 3. Пытаемся прочитать файл конфигурации (не страшно, если его нет,
	// т.к. есть BindEnv и умолчания)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else if os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Логирование конфигурации (только вне release-режима)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Question Time Limit: %dс", cfg.Game.QuestionTimeLimitSec)
		log.Printf("Intermission: %dс", cfg.Game.IntermissionSec)
		log.Printf("Catalog Path: %s", cfg.Game.CatalogPath)
		log.Printf("Public URL: %s", cfg.Game.PublicURL)
		log.Printf("RSVP Workbook Set: %t", cfg.RSVP.WorkbookPath != "")
		log.Printf("-----------------------------------------")
	}

	// 6. Проверка обязательных параметров
	if cfg.Game.QuestionTimeLimitSec <= 0 {
		return nil, fmt.Errorf("game question time limit must be positive (check GAME_QUESTION_TIME_LIMIT_SEC)")
	}
	if cfg.Game.IntermissionSec <= 0 {
		return nil, fmt.Errorf("game intermission must be positive (check GAME_INTERMISSION_SEC)")
	}

	return &cfg, nil
}
