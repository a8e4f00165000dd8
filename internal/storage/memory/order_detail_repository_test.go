package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func seedOrderWithDetails(t *testing.T, uow *memory.UnitOfWork) (orderID int64, productIDs []int64) {
	t.Helper()
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		customerID, err := tx.Customers().Create(ctx, domain.Customer{Name: "ihsan"})
		if err != nil {
			return err
		}
		for _, p := range []domain.Product{
			{Name: "qmobile", Price: 300.99, Stock: 25},
			{Name: "charger", Price: 15.50, Stock: 40},
		} {
			id, err := tx.Products().Create(ctx, p)
			if err != nil {
				return err
			}
			productIDs = append(productIDs, id)
		}

		orderID, err = tx.Orders().Create(ctx, domain.Order{CustomerID: customerID, Date: time.Now().UTC()})
		if err != nil {
			return err
		}
		for _, productID := range productIDs {
			if _, err := tx.OrderDetails().Create(ctx, domain.OrderDetail{
				OrderID:   orderID,
				ProductID: productID,
				Quantity:  2,
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
	return orderID, productIDs
}

func TestOrderDetailRepository_GetByOrderProduct(t *testing.T) {
	uow := memory.NewUnitOfWork()
	orderID, productIDs := seedOrderWithDetails(t, uow)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		detail, err := tx.OrderDetails().GetByOrderProduct(ctx, orderID, productIDs[0])
		if err != nil {
			return err
		}
		if detail.Quantity != 2 {
			t.Fatalf("expected quantity 2, got %d", detail.Quantity)
		}

		_, err = tx.OrderDetails().GetByOrderProduct(ctx, orderID, 999)
		if !errors.Is(err, domain.ErrOrderDetailNotFound) {
			t.Fatalf("expected ErrOrderDetailNotFound, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("within failed: %v", err)
	}
}

func TestOrderDetailRepository_DeleteByOrder(t *testing.T) {
	uow := memory.NewUnitOfWork()
	orderID, _ := seedOrderWithDetails(t, uow)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		if err := tx.OrderDetails().DeleteByOrder(ctx, orderID); err != nil {
			return err
		}
		details, err := tx.OrderDetails().ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if len(details) != 0 {
			t.Fatalf("expected no details, got %d", len(details))
		}
		// Повторное bulk-удаление по пустому фильтру не является ошибкой.
		return tx.OrderDetails().DeleteByOrder(ctx, orderID)
	})
	if err != nil {
		t.Fatalf("within failed: %v", err)
	}
}

func TestOrderDetailRepository_DeleteByProduct(t *testing.T) {
	uow := memory.NewUnitOfWork()
	orderID, productIDs := seedOrderWithDetails(t, uow)
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		if err := tx.OrderDetails().DeleteByProduct(ctx, productIDs[0]); err != nil {
			return err
		}
		details, err := tx.OrderDetails().ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if len(details) != 1 || details[0].ProductID != productIDs[1] {
			t.Fatalf("expected only second product left, got %+v", details)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("within failed: %v", err)
	}
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	uow := memory.NewUnitOfWork()
	ctx := context.Background()

	err := uow.Within(ctx, func(tx domain.Tx) error {
		first, err := tx.Customers().Create(ctx, domain.Customer{Name: "first"})
		if err != nil {
			return err
		}
		second, err := tx.Customers().Create(ctx, domain.Customer{Name: "second"})
		if err != nil {
			return err
		}
		for _, customerID := range []int64{first, second, first} {
			if _, err := tx.Orders().Create(ctx, domain.Order{CustomerID: customerID, Date: time.Now().UTC()}); err != nil {
				return err
			}
		}

		orders, err := tx.Orders().ListByCustomer(ctx, first)
		if err != nil {
			return err
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		if orders[0].ID > orders[1].ID {
			t.Fatal("expected orders sorted by id")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("within failed: %v", err)
	}
}
