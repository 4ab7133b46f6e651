package app

import (
	"context"

	"github.com/mimartz/storefront/internal/cart/domain"
	catalog "github.com/mimartz/storefront/internal/catalog/domain"
)

// CartRepo stores one cart per session. Update runs fn against the session's
// cart, creating it first if needed, and commits only when fn returns nil.
// Both the read and the write happen under one lock.
type CartRepo interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	GetOrCreate(ctx context.Context, sessionID string) (domain.Cart, error)
	Update(ctx context.Context, sessionID string, fn func(c *domain.Cart) error) (domain.Cart, error)
}

type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (catalog.Product, error)
}
