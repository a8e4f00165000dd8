package domain

// Product описывает товар с текущим свободным остатком.
type Product struct {
	ID    int64
	Name  string
	Price float64
	// Stock — свободный остаток; инвариант склада: >= 0 на каждой границе транзакции.
	Stock int32
}

// Validate проверяет обязательные поля товара.
func (p *Product) Validate() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrPriceNegative)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrStockNegative)
	}

	return errs
}
