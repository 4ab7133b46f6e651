package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/checkout/app"
	"github.com/mimartz/storefront/internal/checkout/domain"
	"github.com/mimartz/storefront/pkg/httpx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/checkout/quote", h.Quote).Methods(http.MethodGet)
	r.HandleFunc("/api/checkout", h.PlaceOrder).Methods(http.MethodPost)
}

type moneyJSON struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type quoteLineJSON struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	UnitPrice moneyJSON `json:"unit_price"`
	LineTotal moneyJSON `json:"line_total"`
}

type quoteJSON struct {
	Lines    []quoteLineJSON `json:"lines"`
	Subtotal moneyJSON       `json:"subtotal"`
	Shipping moneyJSON       `json:"shipping"`
	Tax      moneyJSON       `json:"tax"`
	TaxRate  float64         `json:"tax_rate"`
	Total    moneyJSON       `json:"total"`
}

type confirmationJSON struct {
	OrderID   string    `json:"order_id"`
	Reference string    `json:"reference"`
	Notice    string    `json:"notice"`
	Quote     quoteJSON `json:"quote"`
	CardLast4 string    `json:"card_last4"`
	PlacedAt  time.Time `json:"placed_at"`
}

// Quote handles GET /api/checkout/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.Quote(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJSON(q))
}

// PlaceOrder handles POST /api/checkout
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var d domain.Details
	if err := httpx.DecodeJSON(r, &d); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.svc.PlaceOrder(r.Context(), httpx.SessionID(r.Context()), d)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, confirmationJSON{
		OrderID:   c.OrderID,
		Reference: c.Reference,
		Notice:    c.Notice,
		Quote:     toJSON(c.Quote),
		CardLast4: c.CardLast4,
		PlacedAt:  c.PlacedAt,
	})
}

func money(m domain.Money) moneyJSON {
	return moneyJSON{Currency: m.Currency, Amount: m.Amount}
}

func toJSON(q domain.Quote) quoteJSON {
	lines := make([]quoteLineJSON, 0, len(q.Lines))
	for _, ln := range q.Lines {
		lines = append(lines, quoteLineJSON{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: money(ln.UnitPrice),
			LineTotal: money(ln.LineTotal),
		})
	}

	return quoteJSON{
		Lines:    lines,
		Subtotal: money(q.Subtotal),
		Shipping: money(q.Shipping),
		Tax:      money(q.Tax),
		TaxRate:  q.TaxRate,
		Total:    money(q.Total),
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), app.ErrInvalidInput.Error()+": ")
		return status.Error(codes.InvalidArgument, msg)
	}
	if errors.Is(err, app.ErrEmptyCart) {
		return status.Error(codes.FailedPrecondition, "cart is empty")
	}
	if errors.Is(err, app.ErrCheckoutPending) {
		return status.Error(codes.FailedPrecondition, "checkout already in progress")
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, "a product in the cart is no longer available")
	}
	return status.Errorf(codes.Internal, "checkout failed: %v", err)
}
