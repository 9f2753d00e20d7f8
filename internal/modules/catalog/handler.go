package catalog

import (
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/products", h.upstreamProducts) // GET /api/products
	r.Get("/api/wines", h.upstreamWines)       // GET /api/wines

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)    // GET  /api/v1/catalog/products?q=&kind=&type=&category=&grape=&sort=
		r.Get("/products/{id}", h.getProduct) // GET  /api/v1/catalog/products/{id}
		r.Get("/wines/{id}", h.getWine)       // GET  /api/v1/catalog/wines/{id}
		r.Get("/events/{id}", h.getEvent)     // GET  /api/v1/catalog/events/{id}
		r.Get("/facets", h.facets)            // GET  /api/v1/catalog/facets
		r.Get("/status", h.status)            // GET  /api/v1/catalog/status
		r.Post("/refresh", h.refresh)         // POST /api/v1/catalog/refresh?force=true
	})
}

func (h *Handler) upstreamProducts(w http.ResponseWriter, r *http.Request) {
	res := h.service.FetchUpstream(r.Context())
	switch res.Status {
	case FetchOK:
		httpx.Respond(w, http.StatusOK, res.Products)
	case FetchTransportError:
		httpx.Respond(w, http.StatusInternalServerError, errorPayload{
			Error:   "failed to load products",
			Message: res.Err.Error(),
		})
	default:
		details := "the request succeeded but returned no products"
		if res.Status == FetchConfigError {
			details = res.Err.Error()
		}
		httpx.Respond(w, http.StatusOK, errorPayload{
			Error:   "woocommerce returned no products, check the server logs",
			Details: details,
		})
	}
}

func (h *Handler) upstreamWines(w http.ResponseWriter, r *http.Request) {
	res := h.service.FetchUpstream(r.Context())
	if res.Status == FetchTransportError {
		httpx.Error(w, http.StatusInternalServerError, "failed to fetch wines")
		return
	}
	wines := make([]*Wine, 0, len(res.Products))
	for _, p := range res.Products {
		if p.Kind == KindWine {
			wines = append(wines, p.Wine)
		}
	}
	httpx.Respond(w, http.StatusOK, wines)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	q := Query{
		Search:   v.Get("q"),
		Kind:     Kind(v.Get("kind")),
		Type:     WineType(v.Get("type")),
		Category: v.Get("category"),
		Grape:    v.Get("grape"),
		Sort:     SortOrder(v.Get("sort")),
	}
	httpx.Respond(w, http.StatusOK, h.service.List(r.Context(), q))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) getWine(w http.ResponseWriter, r *http.Request) {
	wine, err := h.service.GetWine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, WineProduct(wine))
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, EventProduct(e))
}

func (h *Handler) facets(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, http.StatusOK, h.service.Facets(r.Context()))
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, http.StatusOK, h.service.Status())
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	httpx.Respond(w, http.StatusOK, h.service.Refresh(r.Context(), force))
}

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, err.Error())
		return
	}
	httpx.Error(w, http.StatusInternalServerError, err.Error())
}
