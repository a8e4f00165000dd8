package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderDetailRepository — in-memory реализация OrderDetailRepository.
type orderDetailRepository struct {
	st *state
}

// Create сохраняет позицию заказа под следующим свободным идентификатором.
func (r *orderDetailRepository) Create(_ context.Context, detail domain.OrderDetail) (int64, error) {
	detail.ID = r.st.nextDetailID
	r.st.nextDetailID++
	r.st.details[detail.ID] = detail
	return detail.ID, nil
}

// GetByOrderProduct возвращает позицию по паре (заказ, товар).
// Логика операций рассчитывает на не более чем одну строку на пару.
func (r *orderDetailRepository) GetByOrderProduct(_ context.Context, orderID, productID int64) (domain.OrderDetail, error) {
	for _, detail := range r.st.details {
		if detail.OrderID == orderID && detail.ProductID == productID {
			return detail, nil
		}
	}
	return domain.OrderDetail{}, domain.ErrOrderDetailNotFound
}

// Update перезаписывает позицию, если строка существует.
func (r *orderDetailRepository) Update(_ context.Context, detail domain.OrderDetail) error {
	if _, ok := r.st.details[detail.ID]; !ok {
		return domain.ErrOrderDetailNotFound
	}
	r.st.details[detail.ID] = detail
	return nil
}

// ListByOrder возвращает позиции заказа, отсортированные по идентификатору.
func (r *orderDetailRepository) ListByOrder(_ context.Context, orderID int64) ([]domain.OrderDetail, error) {
	result := make([]domain.OrderDetail, 0)
	for _, detail := range r.st.details {
		if detail.OrderID != orderID {
			continue
		}
		result = append(result, detail)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// DeleteByOrder удаляет все позиции заказа. Отсутствие строк не считается ошибкой.
func (r *orderDetailRepository) DeleteByOrder(_ context.Context, orderID int64) error {
	for id, detail := range r.st.details {
		if detail.OrderID == orderID {
			delete(r.st.details, id)
		}
	}
	return nil
}

// DeleteByProduct удаляет все позиции, ссылающиеся на товар.
func (r *orderDetailRepository) DeleteByProduct(_ context.Context, productID int64) error {
	for id, detail := range r.st.details {
		if detail.ProductID == productID {
			delete(r.st.details, id)
		}
	}
	return nil
}

var _ domain.OrderDetailRepository = (*orderDetailRepository)(nil)
