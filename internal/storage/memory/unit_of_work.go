package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// state хранит все таблицы in-memory хранилища.
// Идентификаторы выдаются монотонными счётчиками, как autoincrement в БД.
type state struct {
	customers map[int64]domain.Customer
	products  map[int64]domain.Product
	orders    map[int64]domain.Order
	details   map[int64]domain.OrderDetail

	nextCustomerID int64
	nextProductID  int64
	nextOrderID    int64
	nextDetailID   int64
}

func newState() *state {
	return &state{
		customers: make(map[int64]domain.Customer),
		products:  make(map[int64]domain.Product),
		orders:    make(map[int64]domain.Order),
		details:   make(map[int64]domain.OrderDetail),

		nextCustomerID: 1,
		nextProductID:  1,
		nextOrderID:    1,
		nextDetailID:   1,
	}
}

// clone снимает полную копию состояния для отката транзакции.
func (s *state) clone() *state {
	c := &state{
		customers: make(map[int64]domain.Customer, len(s.customers)),
		products:  make(map[int64]domain.Product, len(s.products)),
		orders:    make(map[int64]domain.Order, len(s.orders)),
		details:   make(map[int64]domain.OrderDetail, len(s.details)),

		nextCustomerID: s.nextCustomerID,
		nextProductID:  s.nextProductID,
		nextOrderID:    s.nextOrderID,
		nextDetailID:   s.nextDetailID,
	}
	for id, v := range s.customers {
		c.customers[id] = v
	}
	for id, v := range s.products {
		c.products[id] = v
	}
	for id, v := range s.orders {
		c.orders[id] = v
	}
	for id, v := range s.details {
		c.details[id] = v
	}
	return c
}

// UnitOfWork — in-memory реализация domain.UnitOfWork для локальной разработки и тестов.
// Транзакционность обеспечивается глобальной блокировкой и откатом на снимок состояния.
type UnitOfWork struct {
	mu sync.Mutex
	st *state
}

// NewUnitOfWork возвращает пустое in-memory хранилище.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{st: newState()}
}

// Within выполняет fn под блокировкой всего хранилища.
// Ошибка fn (или отменённый контекст) возвращает состояние к снимку до вызова.
func (u *UnitOfWork) Within(ctx context.Context, fn func(tx domain.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := u.st.clone()
	if err := fn(&memTx{st: u.st}); err != nil {
		u.st = snapshot
		return err
	}
	return nil
}

// memTx связывает репозитории с состоянием под уже взятой блокировкой.
type memTx struct {
	st *state
}

func (t *memTx) Customers() domain.CustomerRepository {
	return &customerRepository{st: t.st}
}

func (t *memTx) Products() domain.ProductRepository {
	return &productRepository{st: t.st}
}

func (t *memTx) Orders() domain.OrderRepository {
	return &orderRepository{st: t.st}
}

func (t *memTx) OrderDetails() domain.OrderDetailRepository {
	return &orderDetailRepository{st: t.st}
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
var _ domain.Tx = (*memTx)(nil)
