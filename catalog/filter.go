package catalog

import (
	"sort"
	"strconv"

	"birdpacker/models"
	"birdpacker/utils"
)

// Sort keys accepted on product listings.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// Criteria narrows and orders a product listing. Nil/empty fields
// apply no filtering on that dimension.
type Criteria struct {
	CategoryID string
	MinPrice   *int64
	MaxPrice   *int64
	Search     string
	SortKey    string
}

// FilterSort returns the subsequence of products matching every
// provided predicate, ordered by the requested sort key. The sort is
// stable: ties keep their original collection order. An empty
// criteria set returns the input unchanged.
func FilterSort(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.CategoryID != "" && p.CategoryID != c.CategoryID {
			continue
		}
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if c.Search != "" &&
			!utils.ContainsIgnoreCase(p.Name, c.Search) &&
			!utils.ContainsIgnoreCase(p.Description, c.Search) {
			continue
		}
		out = append(out, p)
	}

	switch c.SortKey {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	return out
}

// ParseCriteria reads listing query parameters. Unparseable price
// bounds are ignored rather than rejected.
func ParseCriteria(get func(string) string) Criteria {
	c := Criteria{
		CategoryID: get("category"),
		Search:     get("search"),
		SortKey:    get("sort"),
	}
	if v := get("minPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MinPrice = &n
		}
	}
	if v := get("maxPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxPrice = &n
		}
	}
	return c
}
