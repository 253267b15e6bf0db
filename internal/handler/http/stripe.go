package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// Limite do corpo do webhook. Eventos da Stripe são bem menores que isso.
const maxWebhookBodyBytes = int64(65536)

// CheckoutRequest é o corpo do POST /api/stripe/checkout.
type CheckoutRequest struct {
	PriceID string `json:"priceId"`
	Email   string `json:"email"`
}

// WebhookResponse confirma o recebimento para a Stripe.
type WebhookResponse struct {
	Received bool `json:"received"`
}

// StripeHandler gerencia o checkout e o webhook da Stripe.
type StripeHandler struct {
	checkout CheckoutService
	webhook  WebhookService
}

func NewStripeHandler(checkout CheckoutService, webhook WebhookService) *StripeHandler {
	return &StripeHandler{
		checkout: checkout,
		webhook:  webhook,
	}
}

func (h *StripeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/checkout", h.CreateCheckout) // POST /api/stripe/checkout
	r.Post("/webhook", h.Webhook)         // POST /api/stripe/webhook
	return r
}

// @Summary      Cria uma sessão de checkout na Stripe
// @Description  Abre uma sessão em modo assinatura e devolve a URL hospedada.
// @Tags         stripe
// @Accept       json
// @Produce      json
// @Param        body  body      CheckoutRequest  true  "Plano e e-mail"
// @Success      200   {object}  service.CheckoutResult
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/stripe/checkout [post]
func (h *StripeHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.checkout.CreateCheckout(r.Context(), req.PriceID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondWithError(w, http.StatusBadRequest, msgInvalidEmail)
		case errors.Is(err, service.ErrValidation):
			respondWithError(w, http.StatusBadRequest, msgCheckoutFields)
		default:
			respondWithError(w, http.StatusInternalServerError, msgCheckoutFailed)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, res)
}

// @Summary      Recebe eventos da Stripe
// @Description  Verifica o header Stripe-Signature sobre o corpo cru e espelha assinaturas e faturas no banco.
// @Tags         stripe
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Assinatura t=...,v1=..."
// @Success      200               {object}  WebhookResponse
// @Failure      400               {object}  ErrorResponse
// @Failure      500               {object}  ErrorResponse
// @Router       /api/stripe/webhook [post]
func (h *StripeHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	// O corpo precisa ser lido cru: a assinatura é calculada sobre os bytes exatos.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		slog.Error("Erro ao ler o corpo do webhook", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "Error reading request body")
		return
	}

	err = h.webhook.HandleStripeWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingSignature):
			respondWithError(w, http.StatusBadRequest, msgMissingSig)
		case errors.Is(err, service.ErrInvalidSignature):
			respondWithError(w, http.StatusBadRequest, msgInvalidSig)
		case errors.Is(err, service.ErrMalformedEvent):
			respondWithError(w, http.StatusBadRequest, msgWebhookFailed)
		default:
			respondWithError(w, http.StatusInternalServerError, msgWebhookFailed)
		}
		return
	}

	// 200 avisa a Stripe que o evento foi recebido e não precisa ser reenviado.
	respondWithJSON(w, http.StatusOK, WebhookResponse{Received: true})
}
