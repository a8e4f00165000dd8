package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestUnitOfWork_Integration_CommitAndRollback(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	var customerID int64
	err := uow.Within(ctx, func(tx domain.Tx) error {
		var err error
		customerID, err = tx.Customers().Create(ctx, domain.Customer{Name: "ihsan", Address: "street 49"})
		return err
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if customerID == 0 {
		t.Fatal("expected assigned customer id")
	}

	boom := errors.New("boom")
	err = uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Customers().Create(ctx, domain.Customer{Name: "ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	err = uow.Within(ctx, func(tx domain.Tx) error {
		if _, err := tx.Customers().Get(ctx, customerID); err != nil {
			return err
		}
		_, err := tx.Customers().Get(ctx, customerID+1)
		if !errors.Is(err, domain.ErrCustomerNotFound) {
			t.Fatalf("expected ghost rolled back, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestUnitOfWork_Integration_IDVisibleInsideTx(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		customerID, err := tx.Customers().Create(ctx, domain.Customer{Name: "ihsan"})
		if err != nil {
			return err
		}
		productID, err := tx.Products().Create(ctx, domain.Product{Name: "qmobile", Price: 300.99, Stock: 25})
		if err != nil {
			return err
		}

		// Идентификатор заказа нужен позициям в той же транзакции.
		orderID, err := tx.Orders().Create(ctx, domain.Order{CustomerID: customerID, Date: time.Now().UTC()})
		if err != nil {
			return err
		}
		if _, err := tx.OrderDetails().Create(ctx, domain.OrderDetail{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  4,
			UnitPrice: 300.99,
		}); err != nil {
			return err
		}

		details, err := tx.OrderDetails().ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if len(details) != 1 {
			t.Fatalf("expected 1 detail, got %d", len(details))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("within failed: %v", err)
	}
}

func TestUnitOfWork_Integration_SchemaGuardsStock(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	var productID int64
	err := uow.Within(ctx, func(tx domain.Tx) error {
		var err error
		productID, err = tx.Products().Create(ctx, domain.Product{Name: "qmobile", Price: 300.99, Stock: 3})
		return err
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// Запись отрицательного остатка отбивается CHECK-ограничением схемы.
	err = uow.Within(ctx, func(tx domain.Tx) error {
		product, err := tx.Products().Get(ctx, productID)
		if err != nil {
			return err
		}
		product.Stock = -1
		return tx.Products().Save(ctx, product)
	})
	if !domain.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock mapping, got %v", err)
	}

	err = uow.Within(ctx, func(tx domain.Tx) error {
		product, err := tx.Products().Get(ctx, productID)
		if err != nil {
			return err
		}
		if product.Stock != 3 {
			t.Fatalf("expected stock 3, got %d", product.Stock)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestUnitOfWork_Integration_BulkDeleteByFilter(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	var orderID int64
	err := uow.Within(ctx, func(tx domain.Tx) error {
		customerID, err := tx.Customers().Create(ctx, domain.Customer{Name: "ihsan"})
		if err != nil {
			return err
		}
		orderID, err = tx.Orders().Create(ctx, domain.Order{CustomerID: customerID, Date: time.Now().UTC()})
		if err != nil {
			return err
		}
		for _, name := range []string{"qmobile", "charger"} {
			productID, err := tx.Products().Create(ctx, domain.Product{Name: name, Price: 10, Stock: 10})
			if err != nil {
				return err
			}
			if _, err := tx.OrderDetails().Create(ctx, domain.OrderDetail{
				OrderID:   orderID,
				ProductID: productID,
				Quantity:  1,
				UnitPrice: 10,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	err = uow.Within(ctx, func(tx domain.Tx) error {
		if err := tx.OrderDetails().DeleteByOrder(ctx, orderID); err != nil {
			return err
		}
		details, err := tx.OrderDetails().ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if len(details) != 0 {
			t.Fatalf("expected details removed, got %d", len(details))
		}
		// Повторное удаление по пустому фильтру не является ошибкой.
		return tx.OrderDetails().DeleteByOrder(ctx, orderID)
	})
	if err != nil {
		t.Fatalf("bulk delete failed: %v", err)
	}
}
