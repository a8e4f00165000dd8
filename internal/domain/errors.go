package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего имени клиента или товара.
	ErrNameRequired = errors.New("name is required")
	// Ошибка отрицательной цены товара.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка отрицательного начального остатка товара.
	ErrStockNegative = errors.New("stock must be non-negative")
	// Ошибка отсутствующего идентификатора клиента при создании заказа.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара в позиции (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrItemProductRequired = errors.New("item product_id is required")
	// ErrCustomerNotFound возвращается, если клиент не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderDetailNotFound возвращается, если у заказа нет позиции с данным товаром.
	ErrOrderDetailNotFound = errors.New("order detail not found")
	// ErrInsufficientStock — бизнес-ошибка резервирования: остатка не хватает.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError уточняет, какому товару и насколько не хватило остатка.
// errors.Is(err, ErrInsufficientStock) остаётся истинным для этой ошибки.
type InsufficientStockError struct {
	ProductID int64
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsNotFound проверяет, является ли ошибка отсутствием строки любого из типов.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrOrderDetailNotFound)
}

// IsInsufficientStock проверяет, является ли ошибка нехваткой остатка.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
