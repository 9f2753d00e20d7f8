package wishlist

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes wishlist HTTP endpoints. Mutations pass through requireLogin.
type Handler struct {
	service      Service
	requireLogin func(http.Handler) http.Handler
}

func NewHandler(service Service, requireLogin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireLogin: requireLogin}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Get("/", h.list)          // GET /api/v1/wishlist
		r.Get("/{id}", h.contains) // GET /api/v1/wishlist/{id}

		r.Group(func(r chi.Router) {
			r.Use(h.requireLogin)
			r.Post("/{id}/toggle", h.toggle) // POST   /api/v1/wishlist/{id}/toggle
			r.Delete("/", h.clear)           // DELETE /api/v1/wishlist
		})
	})
}

type membership struct {
	ID         string `json:"id"`
	InWishlist bool   `json:"in_wishlist"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.List(r.Context(), auth.SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, ids)
}

func (h *Handler) contains(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.service.Contains(r.Context(), auth.SessionID(r.Context()), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, membership{ID: id, InWishlist: ok})
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.service.Toggle(r.Context(), auth.SessionID(r.Context()), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, membership{ID: id, InWishlist: ok})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), auth.SessionID(r.Context())); err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, []string{})
}

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMissingID) {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.Error(w, http.StatusInternalServerError, err.Error())
}
