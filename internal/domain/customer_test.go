package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestCustomerValidate(t *testing.T) {
	customer := domain.Customer{Name: "ihsan", Contact: "555-0101", Address: "street 49"}
	if errs := customer.Validate(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}

	customer.Name = ""
	errs := customer.Validate()
	if len(errs) != 1 || !errors.Is(errs[0], domain.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", errs)
	}
}

func TestCustomerPatch(t *testing.T) {
	if !(domain.CustomerPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}

	name := "renamed"
	patch := domain.CustomerPatch{Name: &name}
	if patch.Empty() {
		t.Fatal("patch with name must not be empty")
	}

	customer := domain.Customer{ID: 1, Name: "old", Contact: "keep", Address: "keep"}
	patch.Apply(&customer)
	if customer.Name != "renamed" {
		t.Fatalf("expected name override, got %q", customer.Name)
	}
	if customer.Contact != "keep" || customer.Address != "keep" {
		t.Fatal("unset patch fields must not change")
	}
}

func TestProductValidate(t *testing.T) {
	product := domain.Product{Name: "qmobile", Price: 300.99, Stock: 25}
	if errs := product.Validate(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}

	bad := domain.Product{Name: "", Price: -1, Stock: -5}
	errs := bad.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
}
