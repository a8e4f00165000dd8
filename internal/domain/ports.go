package domain

import (
	"context"
	"time"
)

// CustomerRepository описывает требования к хранилищу клиентов.
// Методы работают в рамках транзакции, из которой получен репозиторий.
type CustomerRepository interface {
	// Create сохраняет нового клиента и возвращает присвоенный идентификатор.
	Create(ctx context.Context, customer Customer) (int64, error)
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (Customer, error)
	// Update перезаписывает все поля клиента.
	Update(ctx context.Context, customer Customer) error
	// Delete удаляет клиента или возвращает ErrCustomerNotFound.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар и возвращает присвоенный идентификатор.
	Create(ctx context.Context, product Product) (int64, error)
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(ctx context.Context, id int64) (Product, error)
	// GetForUpdate возвращает товар, удерживая блокировку строки до конца транзакции.
	GetForUpdate(ctx context.Context, id int64) (Product, error)
	// Save перезаписывает все поля товара.
	Save(ctx context.Context, product Product) error
	// Delete удаляет товар или возвращает ErrProductNotFound.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository описывает требования к хранилищу шапок заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ и возвращает присвоенный идентификатор.
	// Идентификатор виден последующим операциям той же транзакции.
	Create(ctx context.Context, order Order) (int64, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(ctx context.Context, id int64) (Order, error)
	// ListByCustomer возвращает заказы клиента в порядке создания.
	ListByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	// Delete удаляет заказ или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id int64) error
}

// OrderDetailRepository описывает требования к хранилищу позиций заказов.
type OrderDetailRepository interface {
	// Create сохраняет новую позицию и возвращает присвоенный идентификатор.
	Create(ctx context.Context, detail OrderDetail) (int64, error)
	// GetByOrderProduct возвращает позицию заказа по товару или ErrOrderDetailNotFound.
	GetByOrderProduct(ctx context.Context, orderID, productID int64) (OrderDetail, error)
	// Update перезаписывает количество и цену позиции.
	Update(ctx context.Context, detail OrderDetail) error
	// ListByOrder возвращает позиции заказа в порядке создания.
	ListByOrder(ctx context.Context, orderID int64) ([]OrderDetail, error)
	// DeleteByOrder удаляет все позиции заказа (bulk delete по фильтру).
	DeleteByOrder(ctx context.Context, orderID int64) error
	// DeleteByProduct удаляет все позиции, ссылающиеся на товар.
	DeleteByProduct(ctx context.Context, productID int64) error
}

// Tx объединяет репозитории, привязанные к одной открытой транзакции.
type Tx interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Orders() OrderRepository
	OrderDetails() OrderDetailRepository
}

// UnitOfWork открывает транзакцию на время работы fn.
// Возврат ошибки из fn откатывает транзакцию целиком; nil — фиксирует её.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(tx Tx) error) error
}

// MutationEvent описывает зафиксированное изменение для публикации наружу.
type MutationEvent struct {
	Type       string
	Entity     string
	EntityID   int64
	TraceID    string
	OccurredAt time.Time
	Metadata   map[string]any
}

// EventSink публикует события об изменениях после успешного коммита.
type EventSink interface {
	// Publish передаёт событие наружу; ошибки публикации не откатывают транзакцию.
	Publish(event MutationEvent) error
}
