package domain

import "time"

const StatusConfirmed = "CONFIRMED"

// Order is the record of a placed checkout. Reference is the short code quoted
// to the shopper, e.g. MZ-7K3QX9PD. Card data never reaches it beyond the last
// four digits.
type Order struct {
	ID             string
	Reference      string
	SessionID      string
	Status         string
	Currency       string
	SubTotalAmount int64
	ShippingAmount int64
	TaxAmount      int64
	TotalAmount    int64
	Customer       Customer
	CardLast4      string
	OrderItems     []OrderItem
	CreatedAt      time.Time
}

type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Name            string
	UnitAmount      int64
	Quantity        int64
	LineTotalAmount int64
}

type Customer struct {
	FirstName  string
	LastName   string
	Address    string
	City       string
	PostalCode string
}

type CreateOrderRequest struct {
	SessionID      string
	Currency       string
	ShippingAmount int64
	TaxAmount      int64
	Customer       Customer
	CardLast4      string
	Items          []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID  string
	Name       string
	UnitAmount int64
	Quantity   int64
}
