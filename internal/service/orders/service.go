package orders

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

// Service выполняет операции над заказами и ведёт складской инвариант:
// остаток товара меняется только в той же транзакции, что и вызвавшая
// изменение позиция заказа, и никогда не опускается ниже нуля.
type Service struct {
	uow     domain.UnitOfWork
	sink    domain.EventSink // опциональный publisher событий об изменениях
	logger  *log.Entry
	metrics *metrics.OperationMetrics
	now     func() time.Time
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(uow domain.UnitOfWork, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		uow:     uow,
		logger:  logger,
		metrics: metrics.NewOperationMetrics(),
		now:     time.Now,
	}
}

// NewServiceWithSink создаёт сервис заказов, публикующий события об изменениях.
func NewServiceWithSink(uow domain.UnitOfWork, sink domain.EventSink, logger *log.Entry) *Service {
	svc := NewService(uow, logger)
	svc.sink = sink
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(uow domain.UnitOfWork, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	return &Service{
		uow:    uow,
		logger: logger,
		now:    time.Now,
	}
}

// CreateOrder создаёт заказ с набором позиций, атомарно списывая остаток
// под каждую позицию. Если хотя бы одной позиции не хватает остатка, вся
// транзакция откатывается и заказ не создаётся даже частично.
// Цена позиции фиксируется из текущей цены товара в момент оформления.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, items []domain.LineItem) (int64, error) {
	const op = "create_order"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithField("customer_id", customerID)

	if customerID <= 0 {
		return 0, s.reject(op, logger, domain.ErrCustomerRequired)
	}
	if errs := domain.ValidateLineItems(items); len(errs) > 0 {
		return 0, s.reject(op, logger, errors.Join(errs...))
	}

	var orderID int64
	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Customers().Get(ctx, customerID); err != nil {
			return err
		}

		var err error
		orderID, err = tx.Orders().Create(ctx, domain.Order{
			CustomerID: customerID,
			Date:       s.now().UTC(),
		})
		if err != nil {
			return err
		}

		for _, item := range items {
			if err := s.reserve(ctx, tx, orderID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if domain.IsInsufficientStock(err) && s.metrics != nil {
			s.metrics.RecordStockRejection()
		}
		return 0, s.reject(op, logger, fmt.Errorf("create order: %w", err))
	}

	s.committed(op, logger.WithFields(log.Fields{"order_id": orderID, "items": len(items)}), "order created with all items processed")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeOrderCreated,
		Entity:     "order",
		EntityID:   orderID,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
		Metadata:   map[string]any{"customer_id": customerID, "items": len(items)},
	})
	return orderID, nil
}

// reserve списывает остаток под одну позицию и сохраняет её строку.
func (s *Service) reserve(ctx context.Context, tx domain.Tx, orderID int64, item domain.LineItem) error {
	product, err := tx.Products().GetForUpdate(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if product.Stock < item.Quantity {
		return &domain.InsufficientStockError{
			ProductID: item.ProductID,
			Requested: item.Quantity,
			Available: product.Stock,
		}
	}

	if _, err := tx.OrderDetails().Create(ctx, domain.OrderDetail{
		OrderID:   orderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: product.Price,
	}); err != nil {
		return err
	}

	product.Stock -= item.Quantity
	return tx.Products().Save(ctx, product)
}

// UpdateOrderDetails меняет количество существующих позиций заказа.
// Остаток корректируется на дельту new - old: увеличение позиции требует
// свободного остатка, уменьшение возвращает его. Цена позиции заново
// фиксируется из текущей цены товара.
func (s *Service) UpdateOrderDetails(ctx context.Context, orderID int64, items []domain.LineItem) error {
	const op = "update_order_details"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithField("order_id", orderID)

	if errs := domain.ValidateLineItems(items); len(errs) > 0 {
		return s.reject(op, logger, errors.Join(errs...))
	}

	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Orders().Get(ctx, orderID); err != nil {
			return err
		}
		for _, item := range items {
			if err := s.adjust(ctx, tx, orderID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if domain.IsInsufficientStock(err) && s.metrics != nil {
			s.metrics.RecordStockRejection()
		}
		return s.reject(op, logger, fmt.Errorf("update order %d: %w", orderID, err))
	}

	s.committed(op, logger.WithField("items", len(items)), "order updated")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeOrderUpdated,
		Entity:     "order",
		EntityID:   orderID,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
		Metadata:   map[string]any{"items": len(items)},
	})
	return nil
}

// adjust переносит одну позицию заказа на новое количество.
func (s *Service) adjust(ctx context.Context, tx domain.Tx, orderID int64, item domain.LineItem) error {
	detail, err := tx.OrderDetails().GetByOrderProduct(ctx, orderID, item.ProductID)
	if err != nil {
		return err
	}
	product, err := tx.Products().GetForUpdate(ctx, item.ProductID)
	if err != nil {
		return err
	}

	delta := item.Quantity - detail.Quantity
	if product.Stock < delta {
		return &domain.InsufficientStockError{
			ProductID: item.ProductID,
			Requested: delta,
			Available: product.Stock,
		}
	}

	product.Stock -= delta
	if err := tx.Products().Save(ctx, product); err != nil {
		return err
	}

	detail.Quantity = item.Quantity
	detail.UnitPrice = product.Price
	return tx.OrderDetails().Update(ctx, detail)
}

// DeleteOrder удаляет заказ вместе с его позициями.
// Остаток товаров при этом не восстанавливается.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	const op = "delete_order"
	logger, traceID, done := s.begin(op)
	defer done()
	logger = logger.WithField("order_id", id)

	err := s.uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Orders().Get(ctx, id); err != nil {
			return err
		}
		if err := tx.OrderDetails().DeleteByOrder(ctx, id); err != nil {
			return err
		}
		return tx.Orders().Delete(ctx, id)
	})
	if err != nil {
		return s.reject(op, logger, fmt.Errorf("delete order %d: %w", id, err))
	}

	s.committed(op, logger, "order deleted")
	s.publish(logger, domain.MutationEvent{
		Type:       domain.EventTypeOrderDeleted,
		Entity:     "order",
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
