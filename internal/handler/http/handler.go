package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// Os handlers dependem destas interfaces, não das implementações concretas,
// para que os testes possam trocar o serviço por um mock.

type WaitlistService interface {
	Add(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	List(ctx context.Context) ([]domain.WaitlistEntry, error)
	Count(ctx context.Context) (int, error)
}

type ContactService interface {
	Send(ctx context.Context, sub domain.ContactSubmission) (service.ContactResult, error)
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, priceID, email string) (*service.CheckoutResult, error)
}

type WebhookService interface {
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
}

type ContentService interface {
	Plans() []domain.Plan
	Posts() []domain.BlogPost
	Post(slug string) (*domain.BlogPost, error)
}

// Mensagens públicas de erro. O detalhe fica só no log.
const (
	msgInvalidBody     = "Invalid request body"
	msgInvalidEmail    = "Please provide a valid email address"
	msgInternal        = "Internal server error"
	msgAllFields       = "All fields are required"
	msgEmailRequired   = "Email is required"
	msgAlreadyOnList   = "This email is already on the waitlist"
	msgContactFailed   = "Failed to send message. Please try again later."
	msgContactReceived = "Thank you for your message! We will get back to you soon."
	msgCheckoutFields  = "Missing required fields: priceId and email"
	msgCheckoutFailed  = "Failed to create checkout session"
	msgMissingSig      = "Missing signature"
	msgInvalidSig      = "Invalid signature"
	msgWebhookFailed   = "Webhook processing failed"
	msgPostNotFound    = "Post not found"
)

// ErrorResponse é o corpo de toda resposta de erro.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- FUNÇÕES AUXILIARES ---

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	if code >= http.StatusInternalServerError {
		slog.Error("API Error", "code", code, "message", message)
	} else {
		slog.Debug("API Error", "code", code, "message", message)
	}
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
