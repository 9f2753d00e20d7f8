package order

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes order HTTP endpoints. Every route requires login.
type Handler struct {
	service      Service
	requireLogin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireLogin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireLogin: requireLogin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(h.requireLogin)
		r.Post("/", h.checkout)                 // POST   /api/v1/orders
		r.Get("/", h.listOrders)                // GET    /api/v1/orders
		r.Get("/{id}", h.getOrder)              // GET    /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus) // PATCH  /api/v1/orders/{id}/status
		r.Delete("/", h.clearOrders)            // DELETE /api/v1/orders
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Checkout(r.Context(), auth.SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context(), auth.SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), auth.SessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), auth.SessionID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) clearOrders(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), auth.SessionID(r.Context())); err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, []Order{})
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyCart):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownProduct), errors.Is(err, ErrInvalidTransition):
		httpx.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	}
}
