package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepository — PostgreSQL-реализация ProductRepository.
type productRepository struct {
	tx *sql.Tx
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (int64, error) {
	var id int64
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id
	`, product.Name, product.Price, product.Stock).Scan(&id)
	if err != nil {
		if isCheckViolation(err) {
			return 0, domain.ErrStockNegative
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate блокирует строку товара до конца транзакции (SELECT ... FOR UPDATE),
// чтобы проверка остатка и его списание видели один и тот же снимок.
func (r *productRepository) GetForUpdate(ctx context.Context, id int64) (domain.Product, error) {
	return r.get(ctx, id, true)
}

func (r *productRepository) get(ctx context.Context, id int64, forUpdate bool) (domain.Product, error) {
	query := `
		SELECT id, name, price, stock
		FROM products
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var product domain.Product
	err := r.tx.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.Stock,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r *productRepository) Save(ctx context.Context, product domain.Product) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1,
		    price = $2,
		    stock = $3
		WHERE id = $4
	`, product.Name, product.Price, product.Stock, product.ID)
	if err != nil {
		// Схема несёт CHECK (stock >= 0) как вторую линию обороны инварианта.
		if isCheckViolation(err) {
			return &domain.InsufficientStockError{ProductID: product.ID, Available: 0}
		}
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
