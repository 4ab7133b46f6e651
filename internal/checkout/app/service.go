package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cartdomain "github.com/mimartz/storefront/internal/cart/domain"
	"github.com/mimartz/storefront/internal/checkout/domain"
	"github.com/mimartz/storefront/pkg/money"
	"github.com/mimartz/storefront/pkg/validate"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const NoticeConfirmed = "Order Confirmed!"

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrCheckoutPending = errors.New("checkout in progress")
)

type CartReader interface {
	GetCart(ctx context.Context, sessionID string) ([]CartItem, error)
}

type CartItem struct {
	ProductID string
	Quantity  int64
}

// CartClearer freezes the cart while payment runs and empties it once the
// order is recorded.
type CartClearer interface {
	HoldCart(ctx context.Context, sessionID string) error
	ReleaseCart(ctx context.Context, sessionID string) error
	ClearCart(ctx context.Context, sessionID string) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID     string
	Name   string
	Amount int64
}

// OrderWriter records a confirmed checkout.
type OrderWriter interface {
	CreateOrder(ctx context.Context, sessionID string, q domain.Quote, d domain.Details) (domain.OrderRef, error)
}

type Pricing struct {
	Currency    string
	ShippingFee int64
	TaxRate     float64
}

type Service struct {
	Cart    CartReader
	Clearer CartClearer
	Catalog CatalogReader
	Orders  OrderWriter

	pricing       Pricing
	delay         time.Duration
	maxConcurrent int
	now           func() time.Time
	inflight      singleflight.Group
}

func NewService(cart CartReader, clearer CartClearer, catalog CatalogReader, orders OrderWriter, pricing Pricing, delay time.Duration, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if pricing.Currency == "" {
		pricing.Currency = "PKR"
	}

	return &Service{
		Cart:          cart,
		Clearer:       clearer,
		Catalog:       catalog,
		Orders:        orders,
		pricing:       pricing,
		delay:         delay,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	if sessionID == "" {
		return domain.Quote{}, ErrInvalidInput
	}
	items, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	cur := s.pricing.Currency
	lines := make([]domain.QuoteLine, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(gctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lineTotal, err := money.Mul(product.Amount, it.Quantity)
			if err != nil {
				return fmt.Errorf("%w: product %s: %v", ErrInvalidInput, it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{Currency: cur, Amount: product.Amount},
				LineTotal: domain.Money{Currency: cur, Amount: lineTotal},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	amounts := make([]int64, len(lines))
	for i, line := range lines {
		amounts[i] = line.LineTotal.Amount
	}
	subtotal, err := money.Sum(amounts...)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: subtotal: %v", ErrInvalidInput, err)
	}
	tax, _ := cartdomain.ComputeTotal(subtotal, s.pricing.ShippingFee, s.pricing.TaxRate)
	total, err := money.Sum(subtotal, tax, s.pricing.ShippingFee)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: total: %v", ErrInvalidInput, err)
	}

	return domain.Quote{
		Lines:    lines,
		Subtotal: domain.Money{Currency: cur, Amount: subtotal},
		Shipping: domain.Money{Currency: cur, Amount: s.pricing.ShippingFee},
		Tax:      domain.Money{Currency: cur, Amount: tax},
		TaxRate:  s.pricing.TaxRate,
		Total:    domain.Money{Currency: cur, Amount: total},
	}, nil
}

// PlaceOrder validates the form, holds the cart, waits out the simulated
// payment, records the order and clears the cart. The shopper cannot change
// the cart between pricing and clearing, so the order covers exactly what is
// cleared. Concurrent submissions for one session share a single run, so the
// cart is cleared once. Once started the run ignores cancellation of ctx.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, d domain.Details) (domain.Confirmation, error) {
	if sessionID == "" {
		return domain.Confirmation{}, ErrInvalidInput
	}
	if err := validate.Struct(d); err != nil {
		return domain.Confirmation{}, fmt.Errorf("%w: %s", ErrInvalidInput, validate.Message(err))
	}

	v, err, _ := s.inflight.Do(sessionID, func() (any, error) {
		return s.place(context.WithoutCancel(ctx), sessionID, d)
	})
	if err != nil {
		return domain.Confirmation{}, err
	}
	return v.(domain.Confirmation), nil
}

func (s *Service) place(ctx context.Context, sessionID string, d domain.Details) (conf domain.Confirmation, err error) {
	if err := s.Clearer.HoldCart(ctx, sessionID); err != nil {
		return domain.Confirmation{}, fmt.Errorf("hold cart: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rerr := s.Clearer.ReleaseCart(ctx, sessionID); rerr != nil {
			err = errors.Join(err, fmt.Errorf("release cart: %w", rerr))
		}
	}()

	q, err := s.Quote(ctx, sessionID)
	if err != nil {
		return domain.Confirmation{}, err
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		<-t.C
	}

	ref, err := s.Orders.CreateOrder(ctx, sessionID, q, d)
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("record order: %w", err)
	}
	if err := s.Clearer.ClearCart(ctx, sessionID); err != nil {
		return domain.Confirmation{}, fmt.Errorf("clear cart: %w", err)
	}

	return domain.Confirmation{
		OrderID:   ref.ID,
		Reference: ref.Reference,
		Notice:    NoticeConfirmed,
		Quote:     q,
		CardLast4: CardLast4(d.CardNumber),
		PlacedAt:  s.now(),
	}, nil
}

func CardLast4(card string) string {
	n := validate.NormalizeCard(strings.TrimSpace(card))
	if len(n) < 4 {
		return n
	}
	return n[len(n)-4:]
}
