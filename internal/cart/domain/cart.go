package domain

import (
	"time"

	catalog "github.com/mimartz/storefront/internal/catalog/domain"
)

// MaxQuantity is the most pairs of one product a bag can hold.
const MaxQuantity = 99

type CartItem struct {
	catalog.Product
	Quantity int
}

func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart is one session's bag. Lines are unique by product id and keep the
// order in which products were first added. Held is set while a checkout is
// paying for the cart; the shopper cannot change it until the checkout clears
// or releases it.
type Cart struct {
	ID             string
	Items          []CartItem
	PendingRemoval string
	Held           bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func New(id string, now time.Time) Cart {
	return Cart{ID: id, CreatedAt: now, UpdatedAt: now}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Item(productID string) (CartItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// Add increments the line for p, or appends a new line with quantity 1. A
// line already at MaxQuantity is left as is.
func (c *Cart) Add(p catalog.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		if c.Items[i].Quantity < MaxQuantity {
			c.Items[i].Quantity++
		}
		return
	}
	p.Images = append([]string(nil), p.Images...)
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// UpdateQuantity applies delta only when the result stays within 1 and
// MaxQuantity. A change outside that range, or an unknown id, leaves the cart
// as is.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	cur := c.Items[i].Quantity
	if delta > MaxQuantity-cur || delta <= -cur {
		return
	}
	c.Items[i].Quantity = cur + delta
}

func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	if c.PendingRemoval == productID {
		c.PendingRemoval = ""
	}
}

func (c *Cart) Clear() {
	c.Items = nil
	c.PendingRemoval = ""
	c.Held = false
}

func (c Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.LineTotal()
	}
	return total
}

// Count is the number of pairs in the bag, not the number of lines.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy so callers never share backing arrays with the store.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	for i, it := range c.Items {
		it.Images = append([]string(nil), it.Images...)
		out.Items[i] = it
	}
	return out
}
