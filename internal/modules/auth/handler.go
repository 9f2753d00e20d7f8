package auth

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.register) // POST /api/v1/auth/register
		r.Post("/login", h.login)       // POST /api/v1/auth/login
		r.Post("/logout", h.logout)     // POST /api/v1/auth/logout
		r.Get("/me", h.me)              // GET  /api/v1/auth/me
	})
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.service.Register(r.Context(), SessionID(r.Context()), req.Name, req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, u)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.service.Login(r.Context(), SessionID(r.Context()), req.Email, req.Password)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	wasLoggedIn, err := h.service.Logout(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"logged_out": wasLoggedIn})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.CurrentUser(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, u)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrMissingFields):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		httpx.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, ErrLoginRequired):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, err.Error())
	}
}
