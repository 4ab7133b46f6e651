package adapter

import (
	"context"
	"errors"

	cartapp "github.com/mimartz/storefront/internal/cart/app"
	catalogapp "github.com/mimartz/storefront/internal/catalog/app"
	catalog "github.com/mimartz/storefront/internal/catalog/domain"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (catalog.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return catalog.Product{}, cartapp.ErrNotFound
	}
	if errors.Is(err, catalogapp.ErrInvalidInput) {
		return catalog.Product{}, cartapp.ErrInvalidInput
	}
	return p, err
}
