package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/order/app"
	"github.com/mimartz/storefront/internal/order/domain"
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
	r.HandleFunc("/api/orders/{id}", h.GetOrder).Methods(http.MethodGet)
}

type orderItemJSON struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type OrderJSON struct {
	ID        string          `json:"id"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Currency  string          `json:"currency"`
	Items     []orderItemJSON `json:"items"`
	Subtotal  int64           `json:"subtotal"`
	Shipping  int64           `json:"shipping"`
	Tax       int64           `json:"tax"`
	Total     int64           `json:"total"`
	ShipTo    string          `json:"ship_to"`
	CardLast4 string          `json:"card_last4"`
	CreatedAt time.Time       `json:"created_at"`
}

// GetOrder handles GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOrder(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ToJSON(o))
}

func ToJSON(o domain.Order) OrderJSON {
	items := make([]orderItemJSON, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, orderItemJSON{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitAmount,
			LineTotal: it.LineTotalAmount,
		})
	}
	c := o.Customer
	return OrderJSON{
		ID:        o.ID,
		Reference: o.Reference,
		Status:    o.Status,
		Currency:  o.Currency,
		Items:     items,
		Subtotal:  o.SubTotalAmount,
		Shipping:  o.ShippingAmount,
		Tax:       o.TaxAmount,
		Total:     o.TotalAmount,
		ShipTo:    c.FirstName + " " + c.LastName + ", " + c.Address + ", " + c.City + " " + c.PostalCode,
		CardLast4: o.CardLast4,
		CreatedAt: o.CreatedAt,
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, "order id is required")
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, "order not found")
	}
	return status.Error(codes.Internal, err.Error())
}
