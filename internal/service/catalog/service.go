package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Service выполняет операции над клиентами и товарами.
// Каждая операция — одна атомарная транзакция: либо фиксируется целиком, либо
// не оставляет следа в хранилище.
type Service struct {
	uow     domain.UnitOfWork
	sink    domain.EventSink // опциональный publisher событий об изменениях
	logger  *log.Entry
	metrics *metrics.OperationMetrics
}

// NewService создаёт рабочий экземпляр сервиса каталога.
func NewService(uow domain.UnitOfWork, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		uow:     uow,
		logger:  logger,
		metrics: metrics.NewOperationMetrics(),
	}
}

// NewServiceWithSink создаёт сервис каталога, публикующий события об изменениях.
func NewServiceWithSink(uow domain.UnitOfWork, sink domain.EventSink, logger *log.Entry) *Service {
	svc := NewService(uow, logger)
	svc.sink = sink
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(uow domain.UnitOfWork, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// AddCustomer сохраняет нового клиента и возвращает присвоенный идентификатор.
func (s *Service) AddCustomer(ctx context.Context, name, contact, address string) (int64, error) {
	const op = "add_customer"
	logger, traceID, done := s.begin(op)
	defer done()

	customer := domain.Customer{Name: name, Contact: contact, Address: address}
	if errs := customer.Validate(); len(errs) > 0 {
		return 0, s.reject(op, logger, errors.Join(errs...))
	}

	var id int64
	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		var err error
		id, err = tx.Customers().Create(ctx, customer)
		return err
	})
	if err != nil {
		return 0, s.reject(op, logger, fmt.Errorf("add customer: %w", err))
	}

	s.committed(op, logger.WithField("customer_id", id), "customer added")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeCustomerCreated,
		Entity:     "customer",
		EntityID:   id,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
	})
	return id, nil
}

// UpdateCustomer перезаписывает только заданные в патче поля клиента.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) error {
	const op = "update_customer"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithField("customer_id", id)

	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		customer, err := tx.Customers().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&customer)
		if errs := customer.Validate(); len(errs) > 0 {
			return errors.Join(errs...)
		}
		return tx.Customers().Update(ctx, customer)
	})
	if err != nil {
		return s.reject(op, logger, fmt.Errorf("update customer %d: %w", id, err))
	}

	s.committed(op, logger, "customer updated")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeCustomerUpdated,
		Entity:     "customer",
		EntityID:   id,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// DeleteCustomer удаляет клиента вместе с его заказами и их позициями.
// Каскад выполняется сверху вниз в одной транзакции.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	const op = "delete_customer"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithField("customer_id", id)

	var removedOrders int
	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Customers().Get(ctx, id); err != nil {
			return err
		}
		orders, err := tx.Orders().ListByCustomer(ctx, id)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if err := tx.OrderDetails().DeleteByOrder(ctx, order.ID); err != nil {
				return err
			}
			if err := tx.Orders().Delete(ctx, order.ID); err != nil {
				return err
			}
		}
		removedOrders = len(orders)
		return tx.Customers().Delete(ctx, id)
	})
	if err != nil {
		return s.reject(op, logger, fmt.Errorf("delete customer %d: %w", id, err))
	}

	s.committed(op, logger.WithField("orders_removed", removedOrders), "customer deleted with related records")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeCustomerDeleted,
		Entity:     "customer",
		EntityID:   id,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
		Metadata:   map[string]any{"orders_removed": removedOrders},
	})
	return nil
}

// AddProduct сохраняет новый товар и возвращает присвоенный идентификатор.
func (s *Service) AddProduct(ctx context.Context, name string, price float64, stock int32) (int64, error) {
	const op = "add_product"
	logger, traceID, done := s.begin(op)
	defer done()

	product := domain.Product{Name: name, Price: price, Stock: stock}
	if errs := product.Validate(); len(errs) > 0 {
		return 0, s.reject(op, logger, errors.Join(errs...))
	}

	var id int64
	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		var err error
		id, err = tx.Products().Create(ctx, product)
		return err
	})
	if err != nil {
		return 0, s.reject(op, logger, fmt.Errorf("add product: %w", err))
	}

	s.committed(op, logger.WithField("product_id", id), "product added")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeProductCreated,
		Entity:     "product",
		EntityID:   id,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
	})
	return id, nil
}

// UpdateProductStock применяет знаковую поправку к остатку товара напрямую,
// минуя заказную семантику (пополнение склада, инвентаризация).
// Инвариант склада сохраняется: остаток не может стать отрицательным.
func (s *Service) UpdateProductStock(ctx context.Context, id int64, delta int32) error {
	const op = "update_product_stock"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithFields(log.Fields{"product_id": id, "delta": delta})

	var newStock int32
	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		product, err := tx.Products().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product.Stock+delta < 0 {
			return &domain.InsufficientStockError{
				ProductID: id,
				Requested: -delta,
				Available: product.Stock,
			}
		}
		product.Stock += delta
		newStock = product.Stock
		return tx.Products().Save(ctx, product)
	})
	if err != nil {
		if domain.IsInsufficientStock(err) && s.metrics != nil {
			s.metrics.RecordStockRejection()
		}
		return s.reject(op, logger, fmt.Errorf("update product %d stock: %w", id, err))
	}

	s.committed(op, logger.WithField("stock", newStock), "product stock updated")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeProductStockAdjusted,
		Entity:     "product",
		EntityID:   id,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
		Metadata:   map[string]any{"delta": delta, "stock": newStock},
	})
	return nil
}

// DeleteProduct удаляет товар вместе со ссылающимися на него позициями заказов.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "delete_product"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithField("product_id", id)

	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Products().Get(ctx, id); err != nil {
			return err
		}
		if err := tx.OrderDetails().DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return s.reject(op, logger, fmt.Errorf("delete product %d: %w", id, err))
	}

	s.committed(op, logger, "product deleted with related records")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeProductDeleted,
		Entity:     "product",
		EntityID:   id,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// begin подготавливает логгер операции с trace id и замер длительности.
func (s *Service) begin(op string) (*log.Entry, string, func()) {
	traceID := uuid.NewString()
	logger := s.logger.WithFields(log.Fields{"operation": op, "trace_id": traceID})
	start := time.Now()
	return logger, traceID, func() {
		if s.metrics != nil {
			s.metrics.RecordDuration(op, time.Since(start))
		}
	}
}

// reject фиксирует откат операции в логах и метриках.
func (s *Service) reject(op string, logger *log.Entry, err error) error {
	if s.metrics != nil {
		s.metrics.RecordRolledBack(op)
	}
	logger.WithError(err).Warn("operation rolled back")
	return err
}

// committed фиксирует успешный исход операции.
func (s *Service) committed(op string, logger *log.Entry, msg string) {
	if s.metrics != nil {
		s.metrics.RecordCommitted(op)
	}
	logger.Info(msg)
}

// publish отправляет событие об изменении, если sink настроен.
// Ошибка публикации не влияет на уже зафиксированную транзакцию.
func (s *Service) publish(logger *log.Entry, event domain.MutationEvent) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(event); err != nil {
		logger.WithError(err).Warn("failed to publish mutation event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
}
