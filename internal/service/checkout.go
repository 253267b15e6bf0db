package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v78"
)

// SessionCreator é a parte do client da Stripe que o checkout usa.
// *session.Client (client.API.CheckoutSessions) satisfaz esta interface.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// CheckoutResult identifica a sessão hospedada para onde o cliente será redirecionado.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutService cria sessões de checkout em modo assinatura.
type CheckoutService struct {
	sessions SessionCreator
	baseURL  string
}

// NewCheckoutService cria o serviço. baseURL é a origem pública do site, sem barra final.
func NewCheckoutService(sessions SessionCreator, baseURL string) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// CreateCheckout abre uma sessão para priceID em nome de email.
// O e-mail vai nos metadados da sessão e da assinatura, porque é por ele
// que o webhook encontra o usuário depois.
func (s *CheckoutService) CreateCheckout(ctx context.Context, priceID, email string) (*CheckoutResult, error) {
	priceID = strings.TrimSpace(priceID)
	email = strings.TrimSpace(email)
	if priceID == "" || email == "" {
		return nil, ErrRequiredFields
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(s.baseURL + "/pricing?success=true"),
		CancelURL:     stripe.String(s.baseURL + "/pricing?canceled=true"),
		CustomerEmail: stripe.String(email),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"email": email},
		},
	}
	params.AddMetadata("email", email)
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		slog.Error("Falha ao criar a sessão de checkout na Stripe", "error", err, "price_id", priceID)
		checkoutSessions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	checkoutSessions.WithLabelValues("created").Inc()
	slog.Info("Sessão de checkout criada", "session_id", sess.ID, "price_id", priceID)
	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}
