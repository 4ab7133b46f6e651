package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	cartapp "github.com/mimartz/storefront/internal/cart/app"
	cartadapter "github.com/mimartz/storefront/internal/cart/infra/adapter"
	cartmem "github.com/mimartz/storefront/internal/cart/infra/memory"
	catalogapp "github.com/mimartz/storefront/internal/catalog/app"
	catalogmem "github.com/mimartz/storefront/internal/catalog/infra/memory"
	"github.com/mimartz/storefront/internal/checkout/app"
	"github.com/mimartz/storefront/internal/checkout/infra/adapter"
	orderapp "github.com/mimartz/storefront/internal/order/app"
	ordermem "github.com/mimartz/storefront/internal/order/infra/memory"
	"github.com/mimartz/storefront/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = "3d6f2a1b-7c8e-4f9a-b0c1-d2e3f4a5b6c7"

func setup(t *testing.T) (http.Handler, *cartapp.Service) {
	t.Helper()
	products, err := catalogmem.LoadDefault()
	require.NoError(t, err)
	catalog := catalogapp.NewService(catalogmem.NewProductRepo(products))
	cart := cartapp.NewService(cartmem.NewCartRepo(), cartadapter.NewCatalogServiceReader(catalog))
	orders := orderapp.NewService(ordermem.NewOrderRepo())

	reader := adapter.NewCartServiceReader(cart)
	svc := app.NewService(reader, reader,
		adapter.NewCatalogServiceReader(catalog),
		adapter.NewOrderServiceWriter(orders),
		app.Pricing{Currency: "PKR", ShippingFee: 250, TaxRate: 0.05}, 0, 4)

	r := mux.NewRouter()
	r.Use(httpx.WithSession)
	NewHandler(svc).Register(r)
	return r, cart
}

func send(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(httpx.SessionHeader, session)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const form = `{"first_name":"Ayesha","last_name":"Malik","address":"House 4, Street 9","city":"Islamabad",
"postal_code":"44000","card_number":"4242 4242 4242 4242","expiry":"04/29","cvc":"123"}`

func TestCheckout(t *testing.T) {
	h, cart := setup(t)
	ctx := httpx.ContextWithSession(t.Context(), session)

	rec := send(h, http.MethodGet, "/api/checkout/quote", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, _, err := cart.AddItem(ctx, session, "1")
	require.NoError(t, err)
	_, _, err = cart.AddItem(ctx, session, "1")
	require.NoError(t, err)

	rec = send(h, http.MethodGet, "/api/checkout/quote", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var q quoteJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, int64(4998), q.Subtotal.Amount)
	assert.Equal(t, int64(250), q.Tax.Amount)
	assert.Equal(t, int64(5498), q.Total.Amount)

	rec = send(h, http.MethodPost, "/api/checkout", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c confirmationJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "Order Confirmed!", c.Notice)
	assert.NotEmpty(t, c.OrderID)
	assert.Regexp(t, `^MZ-[2-9A-HJ-NP-Z]{8}$`, c.Reference)
	assert.Equal(t, "4242", c.CardLast4)
	assert.NotContains(t, rec.Body.String(), "4242 4242")

	after, err := cart.GetCart(ctx, session)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
}

func TestCheckoutRejectsBadForm(t *testing.T) {
	h, cart := setup(t)
	_, _, err := cart.AddItem(t.Context(), session, "2")
	require.NoError(t, err)

	rec := send(h, http.MethodPost, "/api/checkout", `{"first_name":"Ali"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "last_name is required")

	c, err := cart.GetCart(t.Context(), session)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count())
}
