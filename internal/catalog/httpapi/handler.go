package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/catalog/app"
	"github.com/mimartz/storefront/internal/catalog/domain"
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
	r.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", h.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", h.ListCategories).Methods(http.MethodGet)
}

type productJSON struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Gender       string   `json:"gender"`
	PrimaryImage string   `json:"image"`
	Images       []string `json:"images"`
}

type listResponse struct {
	Products   []productJSON `json:"products"`
	Categories []string      `json:"categories"`
	Total      int           `json:"total"`
}

// ListProducts handles GET /api/products?gender=&category=&price=
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing, err := h.svc.ListProducts(r.Context(), app.Filter{
		Gender:    q.Get("gender"),
		Category:  q.Get("category"),
		PriceBand: q.Get("price"),
	})
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}

	out := make([]productJSON, 0, len(listing.Products))
	for _, p := range listing.Products {
		out = append(out, toJSON(p))
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Products:   out,
		Categories: listing.Categories,
		Total:      len(out),
	})
}

// GetProduct handles GET /api/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJSON(p))
}

// ListCategories handles GET /api/categories?gender=
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context(), r.URL.Query().Get("gender"))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]string{"categories": cats})
}

func toJSON(p domain.Product) productJSON {
	return productJSON{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Category:     p.Category,
		Gender:       string(p.Gender),
		PrimaryImage: p.PrimaryImage(),
		Images:       p.Images,
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, "invalid gender, category or price filter")
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, "product not found")
	}
	return status.Error(codes.Internal, err.Error())
}
