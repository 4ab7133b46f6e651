package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/stylist/app"
	"github.com/mimartz/storefront/internal/stylist/domain"
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
	r.HandleFunc("/api/stylist/messages", h.History).Methods(http.MethodGet)
	r.HandleFunc("/api/stylist/messages", h.Send).Methods(http.MethodPost)
}

type messageJSON struct {
	Role    string `json:"role"`
	Text    string `json:"text"`
	IsError bool   `json:"is_error,omitempty"`
}

type sendRequest struct {
	Message string `json:"message"`
}

// History handles GET /api/stylist/messages
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.History(r.Context(), httpx.SessionID(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	out := make([]messageJSON, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toJSON(m))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"messages": out,
		"enabled":  h.svc.Enabled(),
	})
}

// Send handles POST /api/stylist/messages
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	reply, err := h.svc.Send(r.Context(), httpx.SessionID(r.Context()), req.Message)
	if err != nil {
		httpx.WriteError(w, r, mapErr(err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJSON(reply))
}

func toJSON(m domain.Message) messageJSON {
	return messageJSON{Role: m.Role, Text: m.Text, IsError: m.IsError}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, "message must be between 1 and 2000 characters")
	}
	return status.Error(codes.Internal, err.Error())
}
