package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/cart/app"
	"github.com/mimartz/storefront/internal/cart/domain"
	"github.com/mimartz/storefront/pkg/httpx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	NoticeAdded   = "Added to Bag"
	NoticeRemoved = "Item Removed"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/items", h.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id}", h.UpdateItem).Methods(http.MethodPatch)
	r.HandleFunc("/api/cart/items/{id}", h.RemoveItem).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/items/{id}/removal", h.RequestRemoval).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/removal/confirm", h.ConfirmRemoval).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/removal/cancel", h.CancelRemoval).Methods(http.MethodPost)
}

type itemJSON struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type cartJSON struct {
	ID             string     `json:"id"`
	Items          []itemJSON `json:"items"`
	Subtotal       int64      `json:"subtotal"`
	Count          int        `json:"count"`
	PendingRemoval string     `json:"pending_removal,omitempty"`
	CheckingOut    bool       `json:"checking_out,omitempty"`
}

// cartResponse wraps the cart with view hints for the storefront.
type cartResponse struct {
	Cart     cartJSON `json:"cart"`
	Notice   string   `json:"notice,omitempty"`
	CartOpen bool     `json:"cart_open,omitempty"`
}

type addRequest struct {
	ProductID string `json:"product_id"`
}

type updateRequest struct {
	Delta int `json:"delta"`
}

type removalResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Prompt    string `json:"prompt"`
}

// GetCart handles GET /api/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCart(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cartResponse{Cart: toJSON(c)})
}

// AddItem handles POST /api/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, _, err := h.svc.AddItem(r.Context(), httpx.SessionID(r.Context()), req.ProductID)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cartResponse{
		Cart:     toJSON(c),
		Notice:   NoticeAdded,
		CartOpen: true,
	})
}

// UpdateItem handles PATCH /api/cart/items/{id}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.svc.UpdateQuantity(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["id"], req.Delta)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cartResponse{Cart: toJSON(c)})
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.RemoveItem(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cartResponse{Cart: toJSON(c), Notice: NoticeRemoved})
}

// RequestRemoval handles POST /api/cart/items/{id}/removal
func (h *Handler) RequestRemoval(w http.ResponseWriter, r *http.Request) {
	rm, err := h.svc.RequestRemoval(r.Context(), httpx.SessionID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, removalResponse{
		ProductID: rm.ProductID,
		Name:      rm.Name,
		Prompt:    rm.Prompt,
	})
}

// ConfirmRemoval handles POST /api/cart/removal/confirm
func (h *Handler) ConfirmRemoval(w http.ResponseWriter, r *http.Request) {
	c, _, err := h.svc.ConfirmRemoval(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cartResponse{Cart: toJSON(c), Notice: NoticeRemoved})
}

// CancelRemoval handles POST /api/cart/removal/cancel
func (h *Handler) CancelRemoval(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.CancelRemoval(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cartResponse{Cart: toJSON(c)})
}

func toJSON(c domain.Cart) cartJSON {
	items := make([]itemJSON, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, itemJSON{
			ProductID: it.ID,
			Name:      it.Name,
			Category:  it.Category,
			Image:     it.PrimaryImage(),
			Price:     it.Price,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	return cartJSON{
		ID:             c.ID,
		Items:          items,
		Subtotal:       c.Subtotal(),
		Count:          c.Count(),
		PendingRemoval: c.PendingRemoval,
		CheckingOut:    c.Held,
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, "product id is required")
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, "product not found")
	}
	if errors.Is(err, app.ErrNoPendingRemoval) || errors.Is(err, app.ErrCheckoutPending) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, "request cancelled")
	}
	return status.Error(codes.Internal, err.Error())
}
