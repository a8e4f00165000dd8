package domain

import "time"

// Order агрегирует шапку заказа. Позиции хранятся отдельными строками OrderDetail.
type Order struct {
	ID         int64
	CustomerID int64
	Date       time.Time
}

// OrderDetail представляет одну позицию заказа.
// Пара (OrderID, ProductID) уникальна в пределах заказа.
type OrderDetail struct {
	ID      int64
	OrderID int64
	// ProductID — товар, под который списан остаток.
	ProductID int64
	// Quantity — количество единиц товара, всегда > 0.
	Quantity int32
	// UnitPrice — цена за единицу, зафиксированная в момент оформления позиции.
	// Это копия цены товара, а не живая ссылка на неё.
	UnitPrice float64
}

// LineItem — входная позиция заказа: товар и запрошенное количество.
type LineItem struct {
	ProductID int64
	Quantity  int32
}

// Validate проверяет корректность одной входной позиции.
func (i LineItem) Validate() []error {
	var errs []error

	if i.ProductID <= 0 {
		errs = append(errs, ErrItemProductRequired)
	}
	if i.Quantity <= 0 {
		errs = append(errs, ErrItemQtyInvalid)
	}

	return errs
}

// ValidateLineItems проверяет набор входных позиций целиком.
func ValidateLineItems(items []LineItem) []error {
	var errs []error

	if len(items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for _, item := range items {
		errs = append(errs, item.Validate()...)
	}

	return errs
}
