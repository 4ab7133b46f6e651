package domain

import "strings"

const AllCategories = "All"

type PriceBand string

const (
	BandAll      PriceBand = "All"
	BandUnder15k PriceBand = "Under15k"
	Band15kTo25k PriceBand = "15kTo25k"
	BandOver25k  PriceBand = "Over25k"
)

const (
	bandLow  int64 = 15000
	bandHigh int64 = 25000
)

// ParsePriceBand accepts the band names as well as the storefront labels
// ("Under 15k", "15k - 25k", "Over 25k"). Empty input means BandAll.
func ParsePriceBand(s string) (PriceBand, bool) {
	norm := strings.ToLower(strings.NewReplacer(" ", "", "-", "to", "_", "").Replace(s))
	switch norm {
	case "", "all":
		return BandAll, true
	case "under15k":
		return BandUnder15k, true
	case "15kto25k":
		return Band15kTo25k, true
	case "over25k":
		return BandOver25k, true
	}
	return "", false
}

func (b PriceBand) Contains(price int64) bool {
	switch b {
	case BandUnder15k:
		return price < bandLow
	case Band15kTo25k:
		return price >= bandLow && price <= bandHigh
	case BandOver25k:
		return price > bandHigh
	default:
		return true
	}
}

// FilterByGender returns the products for g, or all of them when g is empty.
// The input slice is never modified and order is preserved.
func FilterByGender(products []Product, g Gender) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if g == "" || p.Gender == g {
			out = append(out, p)
		}
	}
	return out
}

// CategoriesFor returns "All" followed by each distinct category in first-seen order.
func CategoriesFor(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func FilterByCategoryAndPrice(products []Product, category string, band PriceBand) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != AllCategories && category != "" && p.Category != category {
			continue
		}
		if !band.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}
