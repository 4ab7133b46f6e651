package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/content/app"
	"github.com/mimartz/storefront/internal/content/domain"
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
	r.HandleFunc("/api/pages/shipping", h.Shipping).Methods(http.MethodGet)
	r.HandleFunc("/api/pages/size-guide", h.SizeGuide).Methods(http.MethodGet)
	r.HandleFunc("/api/pages/care", h.Care).Methods(http.MethodGet)
	r.HandleFunc("/api/pages/contact", h.ContactDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/contact", h.SubmitContact).Methods(http.MethodPost)
	r.HandleFunc("/api/newsletter", h.SubscribeNewsletter).Methods(http.MethodPost)
}

type shippingOptionJSON struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Detail        string `json:"detail"`
	Fee           int64  `json:"fee,omitempty"`
	Threshold     int64  `json:"threshold,omitempty"`
	Informational bool   `json:"informational"`
}

type contactJSON struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
	Address string `json:"address"`
}

type shippingJSON struct {
	Title            string               `json:"title"`
	Intro            string               `json:"intro"`
	Options          []shippingOptionJSON `json:"options"`
	ReturnWindowDays int                  `json:"return_window_days"`
	ReturnsPolicy    string               `json:"returns_policy"`
	ReturnsContact   contactJSON          `json:"returns_contact"`
}

type sizeRowJSON struct {
	EU int     `json:"eu"`
	US int     `json:"us"`
	UK int     `json:"uk"`
	CM float64 `json:"cm"`
}

type careItemJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ackJSON struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Shipping handles GET /api/pages/shipping
func (h *Handler) Shipping(w http.ResponseWriter, r *http.Request) {
	page, contact := h.svc.Shipping()
	opts := make([]shippingOptionJSON, 0, len(page.Options))
	for _, o := range page.Options {
		opts = append(opts, shippingOptionJSON{
			Kind:          o.Kind,
			Name:          o.Name,
			Detail:        o.Detail,
			Fee:           o.Fee,
			Threshold:     o.Threshold,
			Informational: o.Informational,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, shippingJSON{
		Title:            page.Title,
		Intro:            page.Intro,
		Options:          opts,
		ReturnWindowDays: page.Returns.WindowDays,
		ReturnsPolicy:    page.Returns.Policy,
		ReturnsContact:   toContactJSON(contact),
	})
}

// SizeGuide handles GET /api/pages/size-guide
func (h *Handler) SizeGuide(w http.ResponseWriter, r *http.Request) {
	g := h.svc.SizeGuide()
	rows := make([]sizeRowJSON, 0, len(g.Rows))
	for _, row := range g.Rows {
		rows = append(rows, sizeRowJSON(row))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"intro":      g.Intro,
		"rows":       rows,
		"fit_advice": g.FitAdvice,
	})
}

// Care handles GET /api/pages/care
func (h *Handler) Care(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Care()
	items := make([]careItemJSON, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, careItemJSON(it))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"intro": c.Intro,
		"items": items,
	})
}

// ContactDetails handles GET /api/pages/contact
func (h *Handler) ContactDetails(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toContactJSON(h.svc.Contact()))
}

// SubmitContact handles POST /api/contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var f domain.ContactForm
	if err := httpx.DecodeJSON(r, &f); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	ack, err := h.svc.SubmitContact(r.Context(), f)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, ackJSON{Title: ack.Title, Text: ack.Text})
}

// SubscribeNewsletter handles POST /api/newsletter
func (h *Handler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var f domain.NewsletterForm
	if err := httpx.DecodeJSON(r, &f); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	ack, err := h.svc.SubscribeNewsletter(r.Context(), f)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ackJSON{Title: ack.Title, Text: ack.Text})
}

func toContactJSON(c domain.ContactDetails) contactJSON {
	return contactJSON{Email: c.Email, Phone: c.Phone, Hours: c.Hours, Address: c.Address}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, strings.TrimPrefix(err.Error(), app.ErrInvalidInput.Error()+": "))
	}
	return status.Error(codes.Internal, err.Error())
}
