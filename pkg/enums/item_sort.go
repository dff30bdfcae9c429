package enums

import "fmt"

// ItemSort enumerates catalog listing sort orders.
type ItemSort string

const (
	ItemSortPriceAsc  ItemSort = "priceAsc"
	ItemSortPriceDesc ItemSort = "priceDesc"
	ItemSortTitleAsc  ItemSort = "titleAsc"
	ItemSortNewest    ItemSort = "newest"
)

var validItemSorts = []ItemSort{
	ItemSortPriceAsc,
	ItemSortPriceDesc,
	ItemSortTitleAsc,
	ItemSortNewest,
}

// String implements fmt.Stringer.
func (i ItemSort) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemSort.
func (i ItemSort) IsValid() bool {
	for _, candidate := range validItemSorts {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemSort converts raw input into an ItemSort.
func ParseItemSort(value string) (ItemSort, error) {
	for _, candidate := range validItemSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item sort %q", value)
}
