package models

import "testing"

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Price: 149000, Quantity: 2},
		{ProductID: "p2", Price: 95000, Quantity: 1},
	}
	if got := CartTotal(items); got != 393000 {
		t.Errorf("CartTotal = %d, want 393000", got)
	}
}

func TestCartTotalEmpty(t *testing.T) {
	if got := CartTotal(nil); got != 0 {
		t.Errorf("empty cart total = %d, want 0", got)
	}
}
