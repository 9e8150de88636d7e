package checkout

import "testing"

func TestShippingCost(t *testing.T) {
	if got := ShippingCost(ShippingStandard); got != 0 {
		t.Errorf("standard shipping should be free, got %d", got)
	}
	if got := ShippingCost(ShippingExpress); got != ExpressSurcharge {
		t.Errorf("express shipping = %d, want %d", got, ExpressSurcharge)
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		subtotal int64
		method   string
		want     Totals
	}{
		{250000, ShippingExpress, Totals{Subtotal: 250000, Shipping: 15, Tax: 25000, Total: 275015}},
		{250000, ShippingStandard, Totals{Subtotal: 250000, Shipping: 0, Tax: 25000, Total: 275000}},
		{0, ShippingStandard, Totals{}},
		{99, ShippingStandard, Totals{Subtotal: 99, Shipping: 0, Tax: 9, Total: 108}},
	}

	for _, tt := range tests {
		got := ComputeTotals(tt.subtotal, tt.method)
		if got != tt.want {
			t.Errorf("ComputeTotals(%d, %s) = %+v, want %+v", tt.subtotal, tt.method, got, tt.want)
		}
	}
}
