package cart

import "testing"

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{3, 3},
	}

	for _, tt := range tests {
		if got := clampQuantity(tt.in); got != tt.want {
			t.Errorf("clampQuantity(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
