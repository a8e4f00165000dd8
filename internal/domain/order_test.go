package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestLineItemValidate_Ok(t *testing.T) {
	item := domain.LineItem{ProductID: 1, Quantity: 4}
	if errs := item.Validate(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestLineItemValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		item domain.LineItem
		want error
	}{
		{
			name: "no product",
			item: domain.LineItem{Quantity: 1},
			want: domain.ErrItemProductRequired,
		},
		{
			name: "zero quantity",
			item: domain.LineItem{ProductID: 1},
			want: domain.ErrItemQtyInvalid,
		},
		{
			name: "negative quantity",
			item: domain.LineItem{ProductID: 1, Quantity: -3},
			want: domain.ErrItemQtyInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.item.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}

func TestValidateLineItems_Empty(t *testing.T) {
	errs := domain.ValidateLineItems(nil)
	if len(errs) != 1 || !errors.Is(errs[0], domain.ErrItemsRequired) {
		t.Fatalf("expected ErrItemsRequired, got %v", errs)
	}
}

func TestValidateLineItems_CollectsPerItem(t *testing.T) {
	errs := domain.ValidateLineItems([]domain.LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 0, Quantity: 0},
	})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}
