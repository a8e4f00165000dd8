package memory

import (
	"context"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// customerRepository — in-memory реализация CustomerRepository.
// Блокировку держит UnitOfWork, поэтому методы работают с картами напрямую.
type customerRepository struct {
	st *state
}

// Create сохраняет клиента под следующим свободным идентификатором.
func (r *customerRepository) Create(_ context.Context, customer domain.Customer) (int64, error) {
	customer.ID = r.st.nextCustomerID
	r.st.nextCustomerID++
	r.st.customers[customer.ID] = customer
	return customer.ID, nil
}

// Get возвращает клиента или ErrCustomerNotFound, если его нет.
func (r *customerRepository) Get(_ context.Context, id int64) (domain.Customer, error) {
	customer, ok := r.st.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// Update перезаписывает клиента, если строка существует.
func (r *customerRepository) Update(_ context.Context, customer domain.Customer) error {
	if _, ok := r.st.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	r.st.customers[customer.ID] = customer
	return nil
}

// Delete удаляет клиента, если строка существует.
func (r *customerRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.st.customers, id)
	return nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
