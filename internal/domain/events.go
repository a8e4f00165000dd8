package domain

// Типы событий об изменениях, публикуемых после коммита операции.
const (
	EventTypeCustomerCreated = "customer.created"
	EventTypeCustomerUpdated = "customer.updated"
	EventTypeCustomerDeleted = "customer.deleted"

	EventTypeProductCreated       = "product.created"
	EventTypeProductStockAdjusted = "product.stock_adjusted"
	EventTypeProductDeleted       = "product.deleted"

	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
	EventTypeOrderDeleted = "order.deleted"
)
