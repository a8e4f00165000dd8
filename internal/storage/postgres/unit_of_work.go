package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// UnitOfWork — PostgreSQL-реализация domain.UnitOfWork.
// Каждый вызов Within открывает собственную транзакцию; подключение
// из пула не разделяется между вызовами.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork создаёт unit of work поверх открытого Store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{db: store.DB()}
}

// Within выполняет fn внутри транзакции: ошибка откатывает её, nil — фиксирует.
func (u *UnitOfWork) Within(ctx context.Context, fn func(tx domain.Tx) error) error {
	sqlTx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&pgTx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// pgTx связывает репозитории с открытой транзакцией.
type pgTx struct {
	tx *sql.Tx
}

func (t *pgTx) Customers() domain.CustomerRepository {
	return &customerRepository{tx: t.tx}
}

func (t *pgTx) Products() domain.ProductRepository {
	return &productRepository{tx: t.tx}
}

func (t *pgTx) Orders() domain.OrderRepository {
	return &orderRepository{tx: t.tx}
}

func (t *pgTx) OrderDetails() domain.OrderDetailRepository {
	return &orderDetailRepository{tx: t.tx}
}

// isCheckViolation распознаёт нарушение CHECK-ограничения схемы (код 23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}

// isForeignKeyViolation распознаёт нарушение внешнего ключа (код 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
var _ domain.Tx = (*pgTx)(nil)
