package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mimartz/storefront/internal/cart/app"
	"github.com/mimartz/storefront/internal/cart/domain"
	catalog "github.com/mimartz/storefront/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var brogue = catalog.Product{ID: "1", Name: "Brogue Shoes", Price: 2499, Gender: catalog.GenderMen, Images: []string{"a.png"}}

func TestCartRepo_GetOrCreate(t *testing.T) {
	r := NewCartRepo()
	ctx := context.Background()

	_, err := r.Get(ctx, "s1")
	require.ErrorIs(t, err, app.ErrNotFound)

	c, err := r.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", c.ID)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, r.Len())

	_, err = r.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestCartRepo_UpdateCommitsOnlyOnSuccess(t *testing.T) {
	r := NewCartRepo()
	ctx := context.Background()

	c, err := r.Update(ctx, "s1", func(c *domain.Cart) error {
		c.Add(brogue)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count())

	boom := errors.New("boom")
	_, err = r.Update(ctx, "s1", func(c *domain.Cart) error {
		c.Add(brogue)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count())
}

func TestCartRepo_ReturnsCopies(t *testing.T) {
	r := NewCartRepo()
	ctx := context.Background()

	c, err := r.Update(ctx, "s1", func(c *domain.Cart) error {
		c.Add(brogue)
		return nil
	})
	require.NoError(t, err)
	c.Items[0].Quantity = 99
	c.Items[0].Images[0] = "changed.png"

	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, "a.png", got.Items[0].Images[0])
}

func TestCartRepo_Sweep(t *testing.T) {
	r := NewCartRepo()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	_, err := r.GetOrCreate(ctx, "old")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = r.GetOrCreate(ctx, "fresh")
	require.NoError(t, err)

	assert.Equal(t, 1, r.Sweep(time.Hour))
	_, err = r.Get(ctx, "old")
	assert.ErrorIs(t, err, app.ErrNotFound)
	_, err = r.Get(ctx, "fresh")
	assert.NoError(t, err)

	_, err = r.Update(ctx, "paying", func(c *domain.Cart) error {
		c.Held = true
		return nil
	})
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, r.Sweep(time.Hour), "only the idle unheld cart goes")
	_, err = r.Get(ctx, "paying")
	assert.NoError(t, err)
}

func TestCartRepo_CancelledContext(t *testing.T) {
	r := NewCartRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Update(ctx, "s1", func(c *domain.Cart) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCartRepo_ConcurrentAdds(t *testing.T) {
	r := NewCartRepo()
	ctx := context.Background()

	const workers = 50
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := r.Update(ctx, "s1", func(c *domain.Cart) error {
				c.Add(brogue)
				return nil
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, workers, got.Items[0].Quantity)
	assert.Equal(t, int64(workers)*2499, got.Subtotal())
}
