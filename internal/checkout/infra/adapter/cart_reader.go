package adapter

import (
	"context"
	"errors"

	cartapp "github.com/mimartz/storefront/internal/cart/app"
	checkoutapp "github.com/mimartz/storefront/internal/checkout/app"
)

// CartServiceReader serves the checkout's cart reads along with the hold and
// final clear around payment.
type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, sessionID string) ([]checkoutapp.CartItem, error) {
	cart, err := r.svc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ID,
			Quantity:  int64(it.Quantity),
		})
	}
	return items, nil
}

func (r *CartServiceReader) HoldCart(ctx context.Context, sessionID string) error {
	_, err := r.svc.HoldForCheckout(ctx, sessionID)
	if errors.Is(err, cartapp.ErrCheckoutPending) {
		return checkoutapp.ErrCheckoutPending
	}
	return err
}

func (r *CartServiceReader) ReleaseCart(ctx context.Context, sessionID string) error {
	_, err := r.svc.ReleaseHold(ctx, sessionID)
	return err
}

func (r *CartServiceReader) ClearCart(ctx context.Context, sessionID string) error {
	_, err := r.svc.ClearCart(ctx, sessionID)
	return err
}
