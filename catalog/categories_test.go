package catalog

import "testing"

func TestCanDeleteCategory(t *testing.T) {
	if !canDeleteCategory(0) {
		t.Error("a category without products should be deletable")
	}
	for _, n := range []int64{1, 7} {
		if canDeleteCategory(n) {
			t.Errorf("a category with %d products must not be deletable", n)
		}
	}
}
