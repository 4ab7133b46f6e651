package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mimartz/storefront/internal/order/domain"
	"github.com/mimartz/storefront/pkg/money"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.SessionID == "" || len(req.Items) == 0 {
		return domain.Order{}, ErrInvalidInput
	}
	if req.ShippingAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: shipping amount cannot be negative, got %d", ErrInvalidInput, req.ShippingAmount)
	}
	if req.TaxAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: tax amount cannot be negative, got %d", ErrInvalidInput, req.TaxAmount)
	}

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	var subTotalAmount int64

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitAmount < 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit amount cannot be negative, got %d", ErrInvalidInput, i, item.UnitAmount)
		}

		lineTotal, err := money.Mul(item.UnitAmount, item.Quantity)
		if err != nil {
			return domain.Order{}, fmt.Errorf("%w: item %d: line total: %v", ErrInvalidInput, i, err)
		}
		if subTotalAmount, err = money.Sum(subTotalAmount, lineTotal); err != nil {
			return domain.Order{}, fmt.Errorf("%w: subtotal: %v", ErrInvalidInput, err)
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: lineTotal,
		})
	}

	totalAmount, err := money.Sum(subTotalAmount, req.TaxAmount, req.ShippingAmount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: total: %v", ErrInvalidInput, err)
	}

	return s.repo.Create(ctx, domain.Order{
		SessionID:      req.SessionID,
		Status:         domain.StatusConfirmed,
		Currency:       req.Currency,
		SubTotalAmount: subTotalAmount,
		ShippingAmount: req.ShippingAmount,
		TaxAmount:      req.TaxAmount,
		TotalAmount:    totalAmount,
		Customer:       req.Customer,
		CardLast4:      req.CardLast4,
		OrderItems:     orderItems,
	})
}

// GetOrder returns the order only to the session that placed it.
func (s *Service) GetOrder(ctx context.Context, sessionID, id string) (domain.Order, error) {
	if sessionID == "" || id == "" {
		return domain.Order{}, ErrInvalidInput
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.SessionID != sessionID {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}
