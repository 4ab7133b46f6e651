package memory

import (
	"context"

	"github.com/mimartz/storefront/internal/catalog/app"
	"github.com/mimartz/storefront/internal/catalog/domain"
)

// ProductRepo serves a catalog fixed at construction. Callers receive copies,
// so the backing slice is never mutated after load.
type ProductRepo struct {
	products []domain.Product
	byID     map[string]int
}

func NewProductRepo(products []domain.Product) *ProductRepo {
	r := &ProductRepo{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, clone(p))
	}
	return r
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, clone(p))
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	idx, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return clone(r.products[idx]), nil
}

func (r *ProductRepo) Len() int {
	return len(r.products)
}

func clone(p domain.Product) domain.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}
