package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mimartz/storefront/internal/cart/app"
	"github.com/mimartz/storefront/internal/cart/domain"
)

// CartRepo keeps carts in process memory, keyed by session id. Nothing
// survives a restart.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
	now   func() time.Time
}

func NewCartRepo() *CartRepo {
	return &CartRepo{
		carts: make(map[string]*domain.Cart),
		now:   time.Now,
	}
}

func (r *CartRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[sessionID]
	if !ok {
		return domain.Cart{}, app.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CartRepo) GetOrCreate(ctx context.Context, sessionID string) (domain.Cart, error) {
	// 1) Try get under the read lock
	cart, err := r.Get(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if err != app.ErrNotFound {
		return domain.Cart{}, err
	}

	// 2) Not found => create, unless someone else won the race
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lockedGetOrCreate(sessionID).Clone(), nil
}

func (r *CartRepo) Update(ctx context.Context, sessionID string, fn func(c *domain.Cart) error) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.lockedGetOrCreate(sessionID)
	work := stored.Clone()
	if err := fn(&work); err != nil {
		return domain.Cart{}, err
	}
	work.ID = sessionID
	work.UpdatedAt = r.now()
	*stored = work
	return work.Clone(), nil
}

// Sweep drops carts idle for longer than ttl and reports how many went. Carts
// held by a running checkout are kept.
func (r *CartRepo) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, c := range r.carts {
		if !c.Held && c.UpdatedAt.Before(cutoff) {
			delete(r.carts, id)
			n++
		}
	}
	return n
}

func (r *CartRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

func (r *CartRepo) lockedGetOrCreate(sessionID string) *domain.Cart {
	if c, ok := r.carts[sessionID]; ok {
		return c
	}
	c := domain.New(sessionID, r.now())
	r.carts[sessionID] = &c
	return &c
}
