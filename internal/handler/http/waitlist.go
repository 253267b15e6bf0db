package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// WaitlistRequest é o corpo do POST /api/waitlist.
type WaitlistRequest struct {
	Email string `json:"email"`
}

// WaitlistCreatedResponse é a resposta de uma inscrição nova.
type WaitlistCreatedResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Entry   *domain.WaitlistEntry `json:"entry"`
}

// WaitlistListResponse lista as inscrições, mais recentes primeiro.
type WaitlistListResponse struct {
	Entries []domain.WaitlistEntry `json:"entries"`
	Total   int                    `json:"total"`
}

// WaitlistCountResponse é a resposta de GET /api/waitlist?action=count.
type WaitlistCountResponse struct {
	Count int `json:"count"`
}

// WaitlistHandler gerencia as rotas de /api/waitlist.
type WaitlistHandler struct {
	service WaitlistService
}

func NewWaitlistHandler(s WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{service: s}
}

func (h *WaitlistHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Join) // POST /api/waitlist
	r.Get("/", h.List)  // GET /api/waitlist[?action=count]
	return r
}

// @Summary      Inscreve um e-mail na lista de espera
// @Tags         waitlist
// @Accept       json
// @Produce      json
// @Param        body  body      WaitlistRequest  true  "E-mail"
// @Success      201   {object}  WaitlistCreatedResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/waitlist [post]
func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req WaitlistRequest
	if err := decodeJSON(r, &req); err != nil {
		// {"email": 123} não traz um e-mail: mesma resposta de e-mail ausente.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "email" {
			respondWithError(w, http.StatusBadRequest, msgEmailRequired)
			return
		}
		respondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	entry, err := h.service.Add(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequiredFields):
			respondWithError(w, http.StatusBadRequest, msgEmailRequired)
		case errors.Is(err, service.ErrValidation):
			respondWithError(w, http.StatusBadRequest, msgInvalidEmail)
		case errors.Is(err, service.ErrConflict):
			respondWithError(w, http.StatusConflict, msgAlreadyOnList)
		default:
			respondWithError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, WaitlistCreatedResponse{
		Success: true,
		Message: "Successfully added to waitlist",
		Entry:   entry,
	})
}

// @Summary      Lista ou conta as inscrições
// @Description  Com action=count devolve apenas {count}.
// @Tags         waitlist
// @Produce      json
// @Param        action  query     string  false  "count"
// @Success      200     {object}  WaitlistListResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/waitlist [get]
func (h *WaitlistHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") == "count" {
		n, err := h.service.Count(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondWithJSON(w, http.StatusOK, WaitlistCountResponse{Count: n})
		return
	}

	entries, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondWithJSON(w, http.StatusOK, WaitlistListResponse{Entries: entries, Total: len(entries)})
}
