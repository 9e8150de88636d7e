package catalog

import (
	"testing"
	"time"

	"birdpacker/models"
)

func i64(n int64) *int64 { return &n }

func sampleProducts() []models.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{ProductID: "p1", Name: "Binoculars", Description: "Compact field binoculars", Price: 300, CategoryID: "c1", CreatedAt: base.AddDate(0, 0, 1)},
		{ProductID: "p2", Name: "Field Guide", Description: "Bird field guide", Price: 100, CategoryID: "c2", CreatedAt: base.AddDate(0, 0, 3)},
		{ProductID: "p3", Name: "Poster", Description: "Butterfly poster", Price: 100, CategoryID: "c2", CreatedAt: base.AddDate(0, 0, 2)},
		{ProductID: "p4", Name: "Anorak", Description: "Waterproof jacket", Price: 500, CategoryID: "c1", CreatedAt: base},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ProductID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterSortEmptyCriteriaIsIdentity(t *testing.T) {
	got := FilterSort(sampleProducts(), Criteria{})
	if !equalIDs(ids(got), []string{"p1", "p2", "p3", "p4"}) {
		t.Fatalf("expected original order, got %v", ids(got))
	}
}

func TestFilterSortFiltersAreConjunctive(t *testing.T) {
	got := FilterSort(sampleProducts(), Criteria{
		CategoryID: "c2",
		MinPrice:   i64(50),
		MaxPrice:   i64(150),
		Search:     "poster",
	})
	if !equalIDs(ids(got), []string{"p3"}) {
		t.Fatalf("expected [p3], got %v", ids(got))
	}
}

func TestFilterSortSearchMatchesNameOrDescription(t *testing.T) {
	got := FilterSort(sampleProducts(), Criteria{Search: "JACKET"})
	if !equalIDs(ids(got), []string{"p4"}) {
		t.Fatalf("case-insensitive description match failed, got %v", ids(got))
	}
}

func TestFilterSortOrdering(t *testing.T) {
	tests := []struct {
		sortKey string
		want    []string
	}{
		{SortNewest, []string{"p2", "p3", "p1", "p4"}},
		{SortPriceAsc, []string{"p2", "p3", "p1", "p4"}},
		{SortPriceDesc, []string{"p4", "p1", "p2", "p3"}},
		{SortNameAsc, []string{"p4", "p1", "p2", "p3"}},
		{SortNameDesc, []string{"p3", "p2", "p1", "p4"}},
	}

	for _, tt := range tests {
		got := FilterSort(sampleProducts(), Criteria{SortKey: tt.sortKey})
		if !equalIDs(ids(got), tt.want) {
			t.Errorf("sort %q: expected %v, got %v", tt.sortKey, tt.want, ids(got))
		}
	}
}

func TestFilterSortStableOnTies(t *testing.T) {
	// p2 and p3 share a price; price-asc must keep p2 before p3.
	got := FilterSort(sampleProducts(), Criteria{SortKey: SortPriceAsc})
	if len(got) < 2 || got[0].ProductID != "p2" || got[1].ProductID != "p3" {
		t.Fatalf("equal prices must keep collection order, got %v", ids(got))
	}
}

func TestFilterSortDoesNotMutateInput(t *testing.T) {
	in := sampleProducts()
	FilterSort(in, Criteria{SortKey: SortPriceDesc})
	if !equalIDs(ids(in), []string{"p1", "p2", "p3", "p4"}) {
		t.Fatalf("input slice reordered: %v", ids(in))
	}
}

func TestParseCriteria(t *testing.T) {
	params := map[string]string{
		"category": "c1",
		"minPrice": "100",
		"maxPrice": "oops",
		"search":   "guide",
		"sort":     "price-asc",
	}
	c := ParseCriteria(func(k string) string { return params[k] })

	if c.CategoryID != "c1" || c.Search != "guide" || c.SortKey != "price-asc" {
		t.Fatalf("unexpected criteria: %+v", c)
	}
	if c.MinPrice == nil || *c.MinPrice != 100 {
		t.Fatalf("minPrice not parsed: %+v", c.MinPrice)
	}
	if c.MaxPrice != nil {
		t.Fatalf("unparseable maxPrice should be ignored, got %v", *c.MaxPrice)
	}
}
