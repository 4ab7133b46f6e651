package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() []Product {
	img := []string{"a.png"}
	return []Product{
		{ID: "1", Name: "Brogue", Price: 2499, Category: "Oxfords", Gender: GenderMen, Images: img},
		{ID: "2", Name: "Royale", Price: 15000, Category: "Loafers", Gender: GenderMen, Images: img},
		{ID: "3", Name: "Coat", Price: 25000, Category: "Heels", Gender: GenderWomen, Images: img},
		{ID: "4", Name: "Seraphina", Price: 26000, Category: "Heels", Gender: GenderWomen, Images: img},
		{ID: "5", Name: "Derby", Price: 25001, Category: "Oxfords", Gender: GenderMen, Images: img},
		{ID: "6", Name: "Riviera", Price: 14999, Category: "Flats", Gender: GenderWomen, Images: img},
	}
}

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterByGender(t *testing.T) {
	catalog := sampleCatalog()

	t.Run("no gender returns full catalog in order", func(t *testing.T) {
		got := FilterByGender(catalog, "")
		assert.Equal(t, ids(catalog), ids(got))
	})

	t.Run("every result matches and counts agree", func(t *testing.T) {
		for _, g := range []Gender{GenderMen, GenderWomen} {
			got := FilterByGender(catalog, g)
			want := 0
			for _, p := range catalog {
				if p.Gender == g {
					want++
				}
			}
			require.Len(t, got, want)
			for _, p := range got {
				assert.Equal(t, g, p.Gender)
			}
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		before := ids(catalog)
		_ = FilterByGender(catalog, GenderWomen)
		assert.Equal(t, before, ids(catalog))
	})
}

func TestCategoriesFor(t *testing.T) {
	got := CategoriesFor(sampleCatalog())
	assert.Equal(t, []string{"All", "Oxfords", "Loafers", "Heels", "Flats"}, got)

	assert.Equal(t, []string{"All"}, CategoriesFor(nil))

	seen := map[string]bool{}
	for _, c := range got {
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
}

func TestFilterByCategoryAndPrice(t *testing.T) {
	catalog := sampleCatalog()

	t.Run("band boundaries", func(t *testing.T) {
		assert.Equal(t, []string{"1", "6"}, ids(FilterByCategoryAndPrice(catalog, AllCategories, BandUnder15k)))
		assert.Equal(t, []string{"2", "3"}, ids(FilterByCategoryAndPrice(catalog, AllCategories, Band15kTo25k)))
		assert.Equal(t, []string{"4", "5"}, ids(FilterByCategoryAndPrice(catalog, AllCategories, BandOver25k)))
	})

	t.Run("bands partition the catalog", func(t *testing.T) {
		counts := map[string]int{}
		for _, b := range []PriceBand{BandUnder15k, Band15kTo25k, BandOver25k} {
			for _, p := range FilterByCategoryAndPrice(catalog, AllCategories, b) {
				counts[p.ID]++
			}
		}
		require.Len(t, counts, len(catalog))
		for id, n := range counts {
			assert.Equal(t, 1, n, "product %s matched %d bands", id, n)
		}
	})

	t.Run("category and band combine", func(t *testing.T) {
		assert.Equal(t, []string{"1", "5"}, ids(FilterByCategoryAndPrice(catalog, "Oxfords", BandAll)))
		assert.Equal(t, []string{"5"}, ids(FilterByCategoryAndPrice(catalog, "Oxfords", BandOver25k)))
	})

	t.Run("no match is an empty result", func(t *testing.T) {
		got := FilterByCategoryAndPrice(catalog, "Sandals", BandAll)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestParsePriceBand(t *testing.T) {
	cases := map[string]PriceBand{
		"":          BandAll,
		"All":       BandAll,
		"Under15k":  BandUnder15k,
		"Under 15k": BandUnder15k,
		"15kTo25k":  Band15kTo25k,
		"15k - 25k": Band15kTo25k,
		"Over 25k":  BandOver25k,
	}
	for in, want := range cases {
		got, ok := ParsePriceBand(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParsePriceBand("cheap")
	assert.False(t, ok)
}

func TestProductValidate(t *testing.T) {
	ok := Product{ID: "1", Name: "x", Price: 1, Gender: GenderMen, Images: []string{"a"}}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Images = nil
	assert.ErrorIs(t, bad.Validate(), ErrInvalidProduct)

	bad = ok
	bad.Gender = "Kids"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidProduct)

	bad = ok
	bad.Price = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidProduct)
}
