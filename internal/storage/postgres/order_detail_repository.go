package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// orderDetailRepository — PostgreSQL-реализация OrderDetailRepository.
type orderDetailRepository struct {
	tx *sql.Tx
}

func (r *orderDetailRepository) Create(ctx context.Context, detail domain.OrderDetail) (int64, error) {
	var id int64
	err := r.tx.QueryRowContext(ctx, `
		INSERT INTO orderdetails (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, detail.OrderID, detail.ProductID, detail.Quantity, detail.UnitPrice).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrOrderNotFound
		}
		if isCheckViolation(err) {
			return 0, domain.ErrItemQtyInvalid
		}
		return 0, fmt.Errorf("insert order detail: %w", err)
	}
	return id, nil
}

func (r *orderDetailRepository) GetByOrderProduct(ctx context.Context, orderID, productID int64) (domain.OrderDetail, error) {
	var detail domain.OrderDetail
	err := r.tx.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM orderdetails
		WHERE order_id = $1
		  AND product_id = $2
	`, orderID, productID).Scan(
		&detail.ID, &detail.OrderID, &detail.ProductID, &detail.Quantity, &detail.UnitPrice,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderDetail{}, domain.ErrOrderDetailNotFound
		}
		return domain.OrderDetail{}, fmt.Errorf("select order detail: %w", err)
	}
	return detail, nil
}

func (r *orderDetailRepository) Update(ctx context.Context, detail domain.OrderDetail) error {
	res, err := r.tx.ExecContext(ctx, `
		UPDATE orderdetails
		SET quantity = $1,
		    unit_price = $2
		WHERE id = $3
	`, detail.Quantity, detail.UnitPrice, detail.ID)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrItemQtyInvalid
		}
		return fmt.Errorf("update order detail: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderDetailNotFound
	}
	return nil
}

func (r *orderDetailRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.OrderDetail, error) {
	rows, err := r.tx.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM orderdetails
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()

	details := make([]domain.OrderDetail, 0)
	for rows.Next() {
		var detail domain.OrderDetail
		if err := rows.Scan(
			&detail.ID, &detail.OrderID, &detail.ProductID, &detail.Quantity, &detail.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order details: %w", err)
	}

	return details, nil
}

// DeleteByOrder удаляет все позиции заказа одним запросом.
// Ноль затронутых строк ошибкой не считается.
func (r *orderDetailRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	if _, err := r.tx.ExecContext(ctx, `DELETE FROM orderdetails WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order details by order: %w", err)
	}
	return nil
}

// DeleteByProduct удаляет все позиции, ссылающиеся на товар, одним запросом.
func (r *orderDetailRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.tx.ExecContext(ctx, `DELETE FROM orderdetails WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete order details by product: %w", err)
	}
	return nil
}

var _ domain.OrderDetailRepository = (*orderDetailRepository)(nil)
