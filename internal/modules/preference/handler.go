package preference

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/auth"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/preferences", func(r chi.Router) {
		r.Get("/language", h.getLanguage) // GET /api/v1/preferences/language
		r.Put("/language", h.setLanguage) // PUT /api/v1/preferences/language
	})
}

type languagePayload struct {
	Language Language `json:"language"`
}

func (h *Handler) getLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.service.Language(r.Context(), auth.SessionID(r.Context()))
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.Respond(w, http.StatusOK, languagePayload{Language: lang})
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req languagePayload
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	lang, err := h.service.SetLanguage(r.Context(), auth.SessionID(r.Context()), req.Language)
	if errors.Is(err, ErrUnsupportedLanguage) {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.Respond(w, http.StatusOK, languagePayload{Language: lang})
}
