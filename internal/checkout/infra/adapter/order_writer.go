package adapter

import (
	"context"

	checkoutapp "github.com/mimartz/storefront/internal/checkout/app"
	"github.com/mimartz/storefront/internal/checkout/domain"
	orderapp "github.com/mimartz/storefront/internal/order/app"
	orderdomain "github.com/mimartz/storefront/internal/order/domain"
)

type OrderServiceWriter struct {
	svc *orderapp.Service
}

func NewOrderServiceWriter(svc *orderapp.Service) *OrderServiceWriter {
	return &OrderServiceWriter{svc: svc}
}

func (w *OrderServiceWriter) CreateOrder(ctx context.Context, sessionID string, q domain.Quote, d domain.Details) (domain.OrderRef, error) {
	items := make([]orderdomain.OrderItemRequest, 0, len(q.Lines))
	for _, ln := range q.Lines {
		items = append(items, orderdomain.OrderItemRequest{
			ProductID:  ln.ProductID,
			Name:       ln.Name,
			UnitAmount: ln.UnitPrice.Amount,
			Quantity:   ln.Quantity,
		})
	}

	o, err := w.svc.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		SessionID:      sessionID,
		Currency:       q.Total.Currency,
		ShippingAmount: q.Shipping.Amount,
		TaxAmount:      q.Tax.Amount,
		Customer: orderdomain.Customer{
			FirstName:  d.FirstName,
			LastName:   d.LastName,
			Address:    d.Address,
			City:       d.City,
			PostalCode: d.PostalCode,
		},
		CardLast4: checkoutapp.CardLast4(d.CardNumber),
		Items:     items,
	})
	if err != nil {
		return domain.OrderRef{}, err
	}
	return domain.OrderRef{ID: o.ID, Reference: o.Reference}, nil
}
