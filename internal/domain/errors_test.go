package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestInsufficientStockError_Is(t *testing.T) {
	err := &domain.InsufficientStockError{ProductID: 7, Requested: 12, Available: 10}

	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatal("expected errors.Is to match ErrInsufficientStock")
	}
	if !domain.IsInsufficientStock(fmt.Errorf("create order: %w", err)) {
		t.Fatal("expected wrapped error to match")
	}

	var detailed *domain.InsufficientStockError
	if !errors.As(err, &detailed) {
		t.Fatal("expected errors.As to extract InsufficientStockError")
	}
	if detailed.Available != 10 {
		t.Fatalf("expected available 10, got %d", detailed.Available)
	}
}

func TestIsNotFound(t *testing.T) {
	for _, err := range []error{
		domain.ErrCustomerNotFound,
		domain.ErrProductNotFound,
		domain.ErrOrderNotFound,
		domain.ErrOrderDetailNotFound,
	} {
		if !domain.IsNotFound(fmt.Errorf("op: %w", err)) {
			t.Fatalf("expected %v to be not-found", err)
		}
	}

	if domain.IsNotFound(domain.ErrInsufficientStock) {
		t.Fatal("insufficient stock must not be not-found")
	}
}
