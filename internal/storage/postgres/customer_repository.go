package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// customerRepository — PostgreSQL-реализация CustomerRepository
// в рамках транзакции, из которой репозиторий получен.
type customerRepository struct {
	tx *sql.Tx
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (int64, error) {
	var id int64
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO customers (name, contact, address)
		VALUES ($1, $2, $3)
		RETURNING id
	`, customer.Name, customer.Contact, customer.Address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, error) {
	var customer domain.Customer
	err := r.tx.QueryRowContext(ctx, `
		SELECT id, name, contact, address
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &customer.Contact, &customer.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer domain.Customer) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE customers
		SET name = $1,
		    contact = $2,
		    address = $3
		WHERE id = $4
	`, customer.Name, customer.Contact, customer.Address, customer.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
