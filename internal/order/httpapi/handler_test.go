package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/order/app"
	"github.com/mimartz/storefront/internal/order/domain"
	"github.com/mimartz/storefront/internal/order/infra/memory"
	"github.com/mimartz/storefront/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrder(t *testing.T) {
	const owner = "0b7e3f5c-1d2a-4c3b-8e9f-a1b2c3d4e5f6"
	svc := app.NewService(memory.NewOrderRepo())
	o, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		SessionID:      owner,
		Currency:       "PKR",
		ShippingAmount: 250,
		TaxAmount:      100,
		Customer:       domain.Customer{FirstName: "Ali", LastName: "Khan", Address: "12 Mall Road", City: "Lahore", PostalCode: "54000"},
		CardLast4:      "4242",
		Items:          []domain.OrderItemRequest{{ProductID: "2", Name: "Royale Loafer", UnitAmount: 2000, Quantity: 1}},
	})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Use(httpx.WithSession)
	NewHandler(svc).Register(r)

	get := func(sid string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+o.ID, nil)
		req.Header.Set(httpx.SessionHeader, sid)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := get(owner)
	require.Equal(t, http.StatusOK, rec.Code)
	var body OrderJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2350), body.Total)
	assert.Equal(t, "Ali Khan, 12 Mall Road, Lahore 54000", body.ShipTo)
	assert.Equal(t, "4242", body.CardLast4)

	rec = get("9c8b7a6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
