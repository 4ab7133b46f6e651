package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/cart/app"
	"github.com/mimartz/storefront/internal/cart/infra/adapter"
	cartmem "github.com/mimartz/storefront/internal/cart/infra/memory"
	catalogapp "github.com/mimartz/storefront/internal/catalog/app"
	catalogmem "github.com/mimartz/storefront/internal/catalog/infra/memory"
	"github.com/mimartz/storefront/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = "6f1c1e1a-8a4b-4b8e-9a57-2a3b8f1d0c11"

func newServer(t *testing.T) http.Handler {
	h, _ := newServerWithService(t)
	return h
}

func newServerWithService(t *testing.T) (http.Handler, *app.Service) {
	t.Helper()
	products, err := catalogmem.LoadDefault()
	require.NoError(t, err)
	catalog := catalogapp.NewService(catalogmem.NewProductRepo(products))
	svc := app.NewService(cartmem.NewCartRepo(), adapter.NewCatalogServiceReader(catalog))

	r := mux.NewRouter()
	r.Use(httpx.WithSession)
	NewHandler(svc).Register(r)
	return r, svc
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(httpx.SessionHeader, session)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out cartResponse
	if rec.Code == http.StatusOK {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestCartFlow(t *testing.T) {
	h := newServer(t)

	rec, got := do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, NoticeAdded, got.Notice)
	assert.True(t, got.CartOpen)
	assert.Equal(t, session, rec.Header().Get(httpx.SessionHeader))

	_, got = do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)
	require.Len(t, got.Cart.Items, 1)
	assert.Equal(t, 2, got.Cart.Items[0].Quantity)
	assert.Equal(t, int64(4998), got.Cart.Subtotal)

	_, got = do(t, h, http.MethodPatch, "/api/cart/items/1", `{"delta":-5}`)
	assert.Equal(t, 2, got.Cart.Count, "floor keeps the line")

	_, got = do(t, h, http.MethodPatch, "/api/cart/items/1", `{"delta":-1}`)
	assert.Equal(t, 1, got.Cart.Count)

	_, got = do(t, h, http.MethodDelete, "/api/cart/items/1", "")
	assert.Empty(t, got.Cart.Items)
	assert.Equal(t, int64(0), got.Cart.Subtotal)
	assert.Equal(t, NoticeRemoved, got.Notice)
}

func TestUpdateQuantityHugeDelta(t *testing.T) {
	h := newServer(t)
	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)

	rec, got := do(t, h, http.MethodPatch, "/api/cart/items/1", `{"delta":4611686018427387904}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, got.Cart.Items, 1)
	assert.Equal(t, 1, got.Cart.Items[0].Quantity)
	assert.Equal(t, int64(2499), got.Cart.Subtotal)

	rec, _ = do(t, h, http.MethodPatch, "/api/cart/items/1", `{"delta":1e30}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditsRefusedDuringCheckout(t *testing.T) {
	h, svc := newServerWithService(t)
	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"1"}`)
	_, err := svc.HoldForCheckout(context.Background(), session)
	require.NoError(t, err)

	rec, _ := do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkout in progress")

	rec, got := do(t, h, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.Cart.CheckingOut)
	assert.Equal(t, 1, got.Cart.Count)
}

func TestRemovalEndpoints(t *testing.T) {
	h := newServer(t)
	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"10"}`)

	rec, _ := do(t, h, http.MethodPost, "/api/cart/removal/confirm", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/cart/items/10/removal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rm removalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rm))
	assert.Equal(t, "Remove Riviera Flat from your bag?", rm.Prompt)

	_, got := do(t, h, http.MethodGet, "/api/cart", "")
	assert.Equal(t, "10", got.Cart.PendingRemoval)

	_, got = do(t, h, http.MethodPost, "/api/cart/removal/confirm", "")
	assert.Equal(t, NoticeRemoved, got.Notice)
	assert.Empty(t, got.Cart.Items)
}

func TestCartErrors(t *testing.T) {
	h := newServer(t)

	rec, _ := do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"404"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/cart/items", `{"sku":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/cart/items/3/removal", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
