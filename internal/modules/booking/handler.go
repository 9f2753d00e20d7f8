package booking

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/auth"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes booking HTTP endpoints. Every route requires login.
type Handler struct {
	service      Service
	requireLogin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireLogin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireLogin: requireLogin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Use(h.requireLogin)
		r.Post("/", h.create)            // POST /api/v1/bookings
		r.Get("/", h.list)               // GET  /api/v1/bookings?event_id=
		r.Post("/{id}/cancel", h.cancel) // POST /api/v1/bookings/{id}/cancel
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.service.Create(r.Context(), auth.SessionID(r.Context()), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, b)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sid := auth.SessionID(r.Context())
	var (
		bookings []Booking
		err      error
	)
	if eventID := r.URL.Query().Get("event_id"); eventID != "" {
		bookings, err = h.service.ListByEvent(r.Context(), sid, eventID)
	} else {
		bookings, err = h.service.List(r.Context(), sid)
	}
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, bookings)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Cancel(r.Context(), auth.SessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, b)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidGuests):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httpx.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	}
}
