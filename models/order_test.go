package models

import "testing"

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidOrderStatus("refunded") {
		t.Error("refunded should be rejected")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, true},

		// no backward moves
		{OrderShipped, OrderProcessing, false},
		{OrderDelivered, OrderShipped, false},

		// no skipping
		{OrderProcessing, OrderDelivered, false},

		// terminal states
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderProcessing, false},
		{OrderCancelled, OrderShipped, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
