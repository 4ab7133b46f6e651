package main

import "github.com/mimartz/storefront/internal/catalog/domain"

type genderSummary struct {
	Gender     string
	Count      int
	Categories map[string]int
}

type bandSummary struct {
	Band  string
	Count int
}

type summary struct {
	Total   int
	Genders []genderSummary
	Bands   []bandSummary
}

func summarize(products []domain.Product) summary {
	s := summary{Total: len(products)}

	for _, g := range []domain.Gender{domain.GenderMen, domain.GenderWomen} {
		subset := domain.FilterByGender(products, g)
		cats := make(map[string]int)
		for _, p := range subset {
			cats[p.Category]++
		}
		s.Genders = append(s.Genders, genderSummary{Gender: string(g), Count: len(subset), Categories: cats})
	}

	for _, b := range []domain.PriceBand{domain.BandUnder15k, domain.Band15kTo25k, domain.BandOver25k} {
		n := len(domain.FilterByCategoryAndPrice(products, domain.AllCategories, b))
		s.Bands = append(s.Bands, bandSummary{Band: string(b), Count: n})
	}
	return s
}
