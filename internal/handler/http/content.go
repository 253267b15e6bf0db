package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// ContentHandler serve o catálogo de planos e o blog.
type ContentHandler struct {
	service ContentService
}

func NewContentHandler(s ContentService) *ContentHandler {
	return &ContentHandler{service: s}
}

// BlogRoutes são as rotas montadas em /api/blog.
func (h *ContentHandler) BlogRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPosts)
	r.Get("/{slug}", h.GetPost)
	return r
}

// @Summary      Lista os planos de assinatura
// @Tags         content
// @Produce      json
// @Success      200  {array}  domain.Plan
// @Router       /api/plans [get]
func (h *ContentHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Plans())
}

// @Summary      Lista os artigos do blog
// @Description  Devolve só os resumos, sem o corpo do artigo.
// @Tags         content
// @Produce      json
// @Success      200  {array}  domain.BlogPost
// @Router       /api/blog [get]
func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Posts())
}

// @Summary      Busca um artigo pelo slug
// @Tags         content
// @Produce      json
// @Param        slug  path      string  true  "Slug do artigo"
// @Success      200   {object}  domain.BlogPost
// @Failure      404   {object}  ErrorResponse
// @Router       /api/blog/{slug} [get]
func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.Post(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, msgPostNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}
