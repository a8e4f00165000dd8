package app

import (
	"os"
	"strconv"
	"strings"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	// StorageDriverMemory — in-memory хранилище для разработки и тестов.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverPostgres — PostgreSQL через pgx.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	StorageDriver StorageDriver
	// PostgresDSN обязателен при StorageDriverPostgres.
	PostgresDSN string
	// PostgresAutoMigrate применяет все up-миграции при старте.
	PostgresAutoMigrate bool
	// KafkaBrokers — список брокеров для публикации событий; пустой список
	// отключает публикацию.
	KafkaBrokers []string
}

// DefaultConfig возвращает конфигурацию по умолчанию: in-memory без Kafka.
func DefaultConfig() Config {
	return Config{
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
	}
}

// LoadConfigFromEnv читает конфигурацию из переменных окружения STOREFRONT_*.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("STOREFRONT_STORE")); v != "" {
		cfg.StorageDriver = StorageDriver(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_DSN")); v != "" {
		cfg.PostgresDSN = v
		// Заданный DSN без явного выбора драйвера включает postgres.
		if os.Getenv("STOREFRONT_STORE") == "" {
			cfg.StorageDriver = StorageDriverPostgres
		}
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_AUTOMIGRATE")); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("STOREFRONT_KAFKA_BROKERS")); v != "" {
		for _, broker := range strings.Split(v, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	return cfg
}
