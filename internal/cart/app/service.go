package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mimartz/storefront/internal/cart/domain"
	catalog "github.com/mimartz/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoPendingRemoval = errors.New("no removal awaiting confirmation")
	ErrCheckoutPending  = errors.New("checkout in progress")
)

type Service struct {
	repo     CartRepo
	products ProductReader
}

func NewService(repo CartRepo, products ProductReader) *Service {
	return &Service{
		repo:     repo,
		products: products,
	}
}

// Removal describes a line the shopper asked to remove and must still confirm.
type Removal struct {
	ProductID string
	Name      string
	Prompt    string
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.repo.GetOrCreate(ctx, sessionID)
}

// AddItem resolves productID against the catalog and adds one pair to the cart.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (domain.Cart, catalog.Product, error) {
	productID = strings.TrimSpace(productID)
	if sessionID == "" || productID == "" {
		return domain.Cart{}, catalog.Product{}, ErrInvalidInput
	}

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, catalog.Product{}, fmt.Errorf("lookup product %s: %w", productID, err)
	}

	c, err := s.edit(ctx, sessionID, func(c *domain.Cart) error {
		c.Add(p)
		return nil
	})
	return c, p, err
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (domain.Cart, error) {
	if sessionID == "" || strings.TrimSpace(productID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.edit(ctx, sessionID, func(c *domain.Cart) error {
		c.UpdateQuantity(strings.TrimSpace(productID), delta)
		return nil
	})
}

// RemoveItem deletes the line outright. Callers that want the confirm step use
// RequestRemoval and ConfirmRemoval instead.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	if sessionID == "" || strings.TrimSpace(productID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.edit(ctx, sessionID, func(c *domain.Cart) error {
		c.Remove(strings.TrimSpace(productID))
		return nil
	})
}

func (s *Service) RequestRemoval(ctx context.Context, sessionID, productID string) (Removal, error) {
	productID = strings.TrimSpace(productID)
	if sessionID == "" || productID == "" {
		return Removal{}, ErrInvalidInput
	}

	var r Removal
	_, err := s.edit(ctx, sessionID, func(c *domain.Cart) error {
		it, ok := c.Item(productID)
		if !ok {
			return ErrNotFound
		}
		c.PendingRemoval = productID
		r = Removal{
			ProductID: productID,
			Name:      it.Name,
			Prompt:    fmt.Sprintf("Remove %s from your bag?", it.Name),
		}
		return nil
	})
	if err != nil {
		return Removal{}, err
	}
	return r, nil
}

// ConfirmRemoval removes the pending line and returns the updated cart and the
// removed product's name.
func (s *Service) ConfirmRemoval(ctx context.Context, sessionID string) (domain.Cart, string, error) {
	if sessionID == "" {
		return domain.Cart{}, "", ErrInvalidInput
	}

	var name string
	c, err := s.edit(ctx, sessionID, func(c *domain.Cart) error {
		if c.PendingRemoval == "" {
			return ErrNoPendingRemoval
		}
		if it, ok := c.Item(c.PendingRemoval); ok {
			name = it.Name
		}
		c.Remove(c.PendingRemoval)
		c.PendingRemoval = ""
		return nil
	})
	return c, name, err
}

func (s *Service) CancelRemoval(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.edit(ctx, sessionID, func(c *domain.Cart) error {
		c.PendingRemoval = ""
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// HoldForCheckout freezes the cart while a checkout pays for it. Holding an
// already held cart fails with ErrCheckoutPending.
func (s *Service) HoldForCheckout(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		if c.Held {
			return ErrCheckoutPending
		}
		c.Held = true
		return nil
	})
}

// ReleaseHold lets the shopper edit the cart again after a checkout that did
// not complete.
func (s *Service) ReleaseHold(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		c.Held = false
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(c *domain.Cart) error) (domain.Cart, error) {
	return s.repo.Update(ctx, sessionID, fn)
}

// edit is mutate for shopper changes, refused while a checkout holds the cart.
func (s *Service) edit(ctx context.Context, sessionID string, fn func(c *domain.Cart) error) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		if c.Held {
			return ErrCheckoutPending
		}
		return fn(c)
	})
}
