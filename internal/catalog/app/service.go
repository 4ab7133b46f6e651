package app

import (
	"context"
	"errors"
	"strings"

	"github.com/mimartz/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// Filter holds the raw query values of a listing request. Empty values mean "all".
type Filter struct {
	Gender    string
	Category  string
	PriceBand string
}

type Listing struct {
	Products   []domain.Product
	Categories []string
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

// ListProducts narrows the catalog by gender first, then derives the category
// list from that subset, then applies category and price band.
func (s *Service) ListProducts(ctx context.Context, f Filter) (Listing, error) {
	gender, err := parseGender(f.Gender)
	if err != nil {
		return Listing{}, err
	}
	band, ok := domain.ParsePriceBand(f.PriceBand)
	if !ok {
		return Listing{}, ErrInvalidInput
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = domain.AllCategories
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return Listing{}, err
	}

	byGender := domain.FilterByGender(all, gender)
	return Listing{
		Products:   domain.FilterByCategoryAndPrice(byGender, category, band),
		Categories: domain.CategoriesFor(byGender),
	}, nil
}

func (s *Service) Categories(ctx context.Context, gender string) ([]string, error) {
	g, err := parseGender(gender)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CategoriesFor(domain.FilterByGender(all, g)), nil
}

func parseGender(s string) (domain.Gender, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	g, ok := domain.ParseGender(s)
	if !ok {
		return "", ErrInvalidInput
	}
	return g, nil
}
