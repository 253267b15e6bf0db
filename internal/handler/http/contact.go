package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// ContactResponse é a resposta de sucesso do formulário.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Note    string `json:"note,omitempty"`
}

// ContactHandler gerencia POST /api/contact.
type ContactHandler struct {
	service ContactService
}

func NewContactHandler(s ContactService) *ContactHandler {
	return &ContactHandler{service: s}
}

func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	return r
}

// @Summary      Envia o formulário de contato
// @Description  Notifica o admin e manda uma confirmação para quem escreveu.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ContactSubmission  true  "Mensagem"
// @Success      200   {object}  ContactResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.ContactSubmission
	if err := decodeJSON(r, &sub); err != nil {
		respondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.service.Send(r.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondWithError(w, http.StatusBadRequest, msgInvalidEmail)
		case errors.Is(err, service.ErrValidation):
			respondWithError(w, http.StatusBadRequest, msgAllFields)
		default:
			respondWithError(w, http.StatusInternalServerError, msgContactFailed)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, ContactResponse{
		Success: true,
		Message: msgContactReceived,
		Note:    res.Note,
	})
}
