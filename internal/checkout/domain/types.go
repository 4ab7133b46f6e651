package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice Money
	LineTotal Money
}

// Quote is the priced cart: subtotal, then flat shipping and tax on the
// subtotal, then the grand total.
type Quote struct {
	Lines    []QuoteLine
	Subtotal Money
	Shipping Money
	Tax      Money
	TaxRate  float64
	Total    Money
}

// Details is the shipping and payment form. Card fields are checked for shape
// only and never leave the request beyond the last four digits.
type Details struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Address    string `json:"address" validate:"required,max=300"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=12"`
	CardNumber string `json:"card_number" validate:"required,cardnum"`
	Expiry     string `json:"expiry" validate:"required,mmyy"`
	CVC        string `json:"cvc" validate:"required,numeric,min=3,max=4"`
}

// OrderRef identifies a recorded order.
type OrderRef struct {
	ID        string
	Reference string
}

// Confirmation is returned once the simulated payment has gone through.
type Confirmation struct {
	OrderID   string
	Reference string
	Notice    string
	Quote     Quote
	CardLast4 string
	PlacedAt  time.Time
}
