package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderRepository — in-memory реализация OrderRepository.
type orderRepository struct {
	st *state
}

// Create сохраняет шапку заказа под следующим свободным идентификатором.
func (r *orderRepository) Create(_ context.Context, order domain.Order) (int64, error) {
	order.ID = r.st.nextOrderID
	r.st.nextOrderID++
	r.st.orders[order.ID] = order
	return order.ID, nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepository) Get(_ context.Context, id int64) (domain.Order, error) {
	order, ok := r.st.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListByCustomer возвращает заказы клиента, отсортированные по идентификатору.
func (r *orderRepository) ListByCustomer(_ context.Context, customerID int64) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for _, order := range r.st.orders {
		if order.CustomerID != customerID {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Delete удаляет заказ, если строка существует.
func (r *orderRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.st.orders, id)
	return nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
