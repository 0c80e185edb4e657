package models

import (
	"math"
	"testing"
)

func TestInvoiceRecalculate(t *testing.T) {
	inv := &Invoice{
		TaxRate: 20,
		Items: []LineItem{
			{Description: "Strategy sprint", Quantity: 2, UnitPrice: 1500},
			{Description: "Landing page", Quantity: 3, UnitPrice: 750, Amount: 999}, // stale amount must be overwritten
		},
	}
	inv.Recalculate()

	if inv.Items[0].Amount != 3000 {
		t.Errorf("item 0 amount: expected 3000, got %v", inv.Items[0].Amount)
	}
	if inv.Items[1].Amount != 2250 {
		t.Errorf("item 1 amount: expected 2250 (stale value replaced), got %v", inv.Items[1].Amount)
	}
	if inv.Subtotal != 5250 {
		t.Errorf("subtotal: expected 5250, got %v", inv.Subtotal)
	}
	if inv.TaxAmount != 1050 {
		t.Errorf("tax: expected 1050, got %v", inv.TaxAmount)
	}
	if inv.Total != 6300 {
		t.Errorf("total: expected 6300, got %v", inv.Total)
	}
}

func TestInvoiceRecalculateTotalInvariant(t *testing.T) {
	inv := &Invoice{
		TaxRate: 8.25,
		Items: []LineItem{
			{Quantity: 1, UnitPrice: 1234.56},
			{Quantity: 7, UnitPrice: 99.99},
		},
	}
	inv.Recalculate()
	want := inv.Subtotal * (1 + inv.TaxRate/100)
	if math.Abs(inv.Total-want) > 0.01 {
		t.Errorf("total %v deviates from subtotal*(1+rate/100)=%v beyond rounding", inv.Total, want)
	}
}

func TestInvoiceRecalculateEmpty(t *testing.T) {
	inv := &Invoice{TaxRate: 20}
	inv.Recalculate()
	if inv.Subtotal != 0 || inv.TaxAmount != 0 || inv.Total != 0 {
		t.Errorf("expected zero totals, got %+v", inv)
	}
}
