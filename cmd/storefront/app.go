package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	cartapp "github.com/mimartz/storefront/internal/cart/app"
	carthttp "github.com/mimartz/storefront/internal/cart/httpapi"
	cartadapter "github.com/mimartz/storefront/internal/cart/infra/adapter"
	cartmem "github.com/mimartz/storefront/internal/cart/infra/memory"

	catalogapp "github.com/mimartz/storefront/internal/catalog/app"
	catalogdomain "github.com/mimartz/storefront/internal/catalog/domain"
	cataloghttp "github.com/mimartz/storefront/internal/catalog/httpapi"
	catalogmem "github.com/mimartz/storefront/internal/catalog/infra/memory"

	checkoutapp "github.com/mimartz/storefront/internal/checkout/app"
	checkouthttp "github.com/mimartz/storefront/internal/checkout/httpapi"
	checkoutadapter "github.com/mimartz/storefront/internal/checkout/infra/adapter"

	contentapp "github.com/mimartz/storefront/internal/content/app"
	contenthttp "github.com/mimartz/storefront/internal/content/httpapi"
	contentembedded "github.com/mimartz/storefront/internal/content/infra/embedded"

	orderapp "github.com/mimartz/storefront/internal/order/app"
	orderhttp "github.com/mimartz/storefront/internal/order/httpapi"
	ordermem "github.com/mimartz/storefront/internal/order/infra/memory"

	stylistapp "github.com/mimartz/storefront/internal/stylist/app"
	stylisthttp "github.com/mimartz/storefront/internal/stylist/httpapi"

	"github.com/mimartz/storefront/pkg/config"
	"github.com/mimartz/storefront/pkg/httpx"
)

// storefront holds the wired services for one process.
type storefront struct {
	router  *mux.Router
	carts   *cartmem.CartRepo
	stylist *stylistapp.Service
	ready   atomic.Bool
}

func loadCatalog(cfg config.Config) ([]catalogdomain.Product, error) {
	if cfg.CatalogPath != "" {
		return catalogmem.LoadFile(cfg.CatalogPath)
	}
	return catalogmem.LoadDefault()
}

// newStorefront wires every bounded context behind one router. model may be
// nil, which leaves the stylist on its fallback replies.
func newStorefront(cfg config.Config, log *slog.Logger, products []catalogdomain.Product, model stylistapp.Model) (*storefront, error) {
	pages, err := contentembedded.Load()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	// Catalog
	catalogSvc := catalogapp.NewService(catalogmem.NewProductRepo(products))

	// Cart
	cartRepo := cartmem.NewCartRepo()
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc))

	// Order
	orderSvc := orderapp.NewService(ordermem.NewOrderRepo())

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	checkoutSvc := checkoutapp.NewService(
		cartReader,
		cartReader,
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		checkoutadapter.NewOrderServiceWriter(orderSvc),
		checkoutapp.Pricing{Currency: cfg.Currency, ShippingFee: cfg.ShippingFee, TaxRate: cfg.TaxRate},
		cfg.CheckoutDelay,
		cfg.QuoteConcurrency,
	)

	stylistSvc := stylistapp.NewService(model, log)
	contentSvc := contentapp.NewService(pages, cfg.ShippingFee, log)

	sf := &storefront{carts: cartRepo, stylist: stylistSvc}

	middleware := []mux.MiddlewareFunc{httpx.Recover(log), httpx.LogRequests(log, "/healthz", "/readyz"), httpx.WithSession}
	r := mux.NewRouter()
	r.Use(middleware...)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !sf.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	cataloghttp.NewHandler(catalogSvc).Register(r)
	carthttp.NewHandler(cartSvc).Register(r)
	checkouthttp.NewHandler(checkoutSvc).Register(r)
	orderhttp.NewHandler(orderSvc).Register(r)
	stylisthttp.NewHandler(stylistSvc).Register(r)
	contenthttp.NewHandler(contentSvc).Register(r)

	// mux skips Use middleware when no route matches.
	r.NotFoundHandler = wrap(routeError(http.StatusNotFound, "NOT_FOUND", "no such route"), middleware)
	r.MethodNotAllowedHandler = wrap(routeError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed"), middleware)

	sf.router = r
	return sf, nil
}

func routeError(code int, name, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, code, map[string]any{
			"error": map[string]string{"code": name, "message": msg},
		})
	})
}

// wrap applies mw so that the first entry runs outermost, as mux.Router.Use does.
func wrap(h http.Handler, mw []mux.MiddlewareFunc) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// newSweeper schedules removal of carts and stylist conversations idle for
// longer than ttl. The caller starts and stops the returned scheduler.
func (sf *storefront) newSweeper(log *slog.Logger, spec string, ttl time.Duration) (*cron.Cron, error) {
	sched := cron.New(cron.WithParser(cronParser))
	_, err := sched.AddFunc(spec, func() {
		carts := sf.carts.Sweep(ttl)
		convs := sf.stylist.Sweep(ttl)
		if carts > 0 || convs > 0 {
			log.Info("idle sessions swept", slog.Int("carts", carts), slog.Int("conversations", convs))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sweep schedule %q: %w", spec, err)
	}
	return sched, nil
}
