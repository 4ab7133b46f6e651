package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/mimartz/storefront/internal/order/app"
	"github.com/mimartz/storefront/internal/order/domain"
	"github.com/mimartz/storefront/pkg/money"
)

// Unambiguous uppercase alphabet: no 0/O or 1/I.
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	now    func() time.Time
	ref    func() string
}

func NewOrderRepo() *OrderRepo {
	gen, err := nanoid.CustomASCII(referenceAlphabet, 8)
	if err != nil {
		panic(fmt.Sprintf("order reference generator: %v", err))
	}
	return &OrderRepo{
		orders: make(map[string]domain.Order),
		now:    time.Now,
		ref:    gen,
	}
}

// Create assigns ids to the order and its items and stores it. Either the
// whole order is stored or nothing is.
func (r *OrderRepo) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	order.ID = uuid.NewString()
	order.Reference = "MZ-" + r.ref()
	order.CreatedAt = r.now()

	items := make([]domain.OrderItem, 0, len(order.OrderItems))
	for i, item := range order.OrderItems {
		if want, err := money.Mul(item.UnitAmount, item.Quantity); err != nil || item.LineTotalAmount != want {
			return domain.Order{}, fmt.Errorf("item %d: line total mismatch", i)
		}
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		items = append(items, item)
	}
	order.OrderItems = items

	r.mu.Lock()
	r.orders[order.ID] = order
	r.mu.Unlock()

	return clone(order), nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, app.ErrNotFound
	}
	return clone(o), nil
}

func clone(o domain.Order) domain.Order {
	o.OrderItems = append([]domain.OrderItem(nil), o.OrderItems...)
	return o
}
