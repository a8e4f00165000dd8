package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	UnitOfWork domain.UnitOfWork
	Catalog    *catalog.Service
	Orders     *orders.Service
	Logger     *log.Entry

	store    *postgres.Store
	producer *kafka.Producer
}

// NewDependencies создаёт и инициализирует все зависимости приложения
// согласно конфигурации. Close освобождает удерживаемые ресурсы.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		deps.UnitOfWork = memory.NewUnitOfWork()
		logger.Info("используем in-memory хранилище")
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres dsn is required for storage driver %q", cfg.StorageDriver)
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}
		deps.store = store
		deps.UnitOfWork = postgres.NewUnitOfWork(store)
		logger.Info("используем PostgreSQL хранилище")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	// Инициализация Kafka producer (опционально)
	var sink domain.EventSink
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.producer = producer
			sink = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	if sink != nil {
		deps.Catalog = catalog.NewServiceWithSink(deps.UnitOfWork, sink, logger.WithField("component", "catalog"))
		deps.Orders = orders.NewServiceWithSink(deps.UnitOfWork, sink, logger.WithField("component", "orders"))
	} else {
		deps.Catalog = catalog.NewService(deps.UnitOfWork, logger.WithField("component", "catalog"))
		deps.Orders = orders.NewService(deps.UnitOfWork, logger.WithField("component", "orders"))
	}

	return deps, nil
}

// Close освобождает подключения к внешним системам.
func (d *Dependencies) Close() {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
