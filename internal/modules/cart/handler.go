package cart

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes cart HTTP endpoints. Mutations pass through requireLogin.
type Handler struct {
	service      Service
	requireLogin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireLogin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireLogin: requireLogin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.summary)            // GET    /api/v1/cart
		r.Get("/count", h.count)         // GET    /api/v1/cart/count
		r.Get("/items/{id}", h.contains) // GET    /api/v1/cart/items/{id}

		r.Group(func(r chi.Router) {
			r.Use(h.requireLogin)
			r.Post("/items", h.add)                  // POST   /api/v1/cart/items
			r.Patch("/items/{id}", h.updateQuantity) // PATCH  /api/v1/cart/items/{id}
			r.Delete("/items/{id}", h.remove)        // DELETE /api/v1/cart/items/{id}
			r.Delete("/", h.clear)                   // DELETE /api/v1/cart
		})
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	h.respondSummary(w, r, http.StatusOK)
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Count(r.Context(), auth.SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]int{"count": n})
}

func (h *Handler) contains(w http.ResponseWriter, r *http.Request) {
	ok, err := h.service.Contains(r.Context(), auth.SessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"in_cart": ok})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.service.Add(r.Context(), auth.SessionID(r.Context()), req.ID); err != nil {
		respondErr(w, err)
		return
	}
	h.respondSummary(w, r, http.StatusCreated)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.service.UpdateQuantity(r.Context(), auth.SessionID(r.Context()), chi.URLParam(r, "id"), req.Delta); err != nil {
		respondErr(w, err)
		return
	}
	h.respondSummary(w, r, http.StatusOK)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Remove(r.Context(), auth.SessionID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	h.respondSummary(w, r, http.StatusOK)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), auth.SessionID(r.Context())); err != nil {
		respondErr(w, err)
		return
	}
	h.respondSummary(w, r, http.StatusOK)
}

func (h *Handler) respondSummary(w http.ResponseWriter, r *http.Request, status int) {
	sum, err := h.service.Summary(r.Context(), auth.SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, status, sum)
}

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMissingID) {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.Error(w, http.StatusInternalServerError, err.Error())
}
