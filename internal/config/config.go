package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	PortalAPIURL   string `mapstructure:"PORTAL_API_URL"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		PortalAPIURL:   os.Getenv("PORTAL_API_URL"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.PortalAPIURL == "" {
		return nil, fmt.Errorf("PORTAL_API_URL is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}
