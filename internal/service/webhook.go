package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/repository"
)

// Tipos de evento da Stripe que espelhamos no banco.
const (
	EventSubscriptionCreated   = "customer.subscription.created"
	EventSubscriptionUpdated   = "customer.subscription.updated"
	EventSubscriptionDeleted   = "customer.subscription.deleted"
	EventInvoicePaymentSucceed = "invoice.payment_succeeded"
	EventInvoicePaymentFailed  = "invoice.payment_failed"
)

// Nomes curtos aceitos como sinônimos dos eventos de assinatura.
var eventAliases = map[string]string{
	"subscription.created": EventSubscriptionCreated,
	"subscription.updated": EventSubscriptionUpdated,
	"subscription.deleted": EventSubscriptionDeleted,
}

// Motivos gravados em unmatched_webhook_events.
const (
	reasonMissingEmail = "missing metadata.email"
	reasonUnknownUser  = "no user with this email"
)

// WebhookService verifica e aplica os eventos da Stripe no espelho local.
// Com repo nil (banco não configurado) os eventos válidos são só registrados no log.
type WebhookService struct {
	repo   repository.BillingRepository
	secret string
	now    func() time.Time
}

// NewWebhookService cria o reconciliador. repo pode ser nil.
func NewWebhookService(repo repository.BillingRepository, webhookSecret string) *WebhookService {
	return &WebhookService{
		repo:   repo,
		secret: webhookSecret,
		now:    time.Now,
	}
}

// HandleStripeWebhook verifica a assinatura do payload cru e aplica o evento.
// Nada é gravado antes da verificação passar. Erros de banco voltam embrulhados
// para que a Stripe tente de novo; eventos que não dá para decodificar viram
// ErrMalformedEvent e não devem ser reenviados.
func (s *WebhookService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if signature == "" {
		webhookEvents.WithLabelValues("unknown", "missing_signature").Inc()
		return ErrMissingSignature
	}
	if s.secret == "" {
		slog.Error("STRIPE_WEBHOOK_SECRET não configurado; webhook rejeitado")
		webhookEvents.WithLabelValues("unknown", "invalid_signature").Inc()
		return ErrInvalidSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		slog.Warn("Assinatura do webhook inválida", "error", err)
		webhookEvents.WithLabelValues("unknown", "invalid_signature").Inc()
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	eventType := string(event.Type)
	if canonical, ok := eventAliases[eventType]; ok {
		eventType = canonical
	}
	logger := slog.With("event_id", event.ID, "event_type", eventType)

	if s.repo == nil {
		logger.Warn("Banco de dados não configurado; evento da Stripe ignorado")
		webhookEvents.WithLabelValues(eventType, "skipped").Inc()
		return nil
	}

	if event.Data == nil {
		webhookEvents.WithLabelValues(eventType, "malformed").Inc()
		return fmt.Errorf("%w: evento %s sem data", ErrMalformedEvent, event.ID)
	}

	switch eventType {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		err = s.upsertSubscription(ctx, logger, &event, eventType)
	case EventSubscriptionDeleted:
		err = s.cancelSubscription(ctx, logger, event.Data.Raw)
	case EventInvoicePaymentSucceed:
		err = s.upsertInvoice(ctx, event.Data.Raw, domain.InvoiceStatusPaid)
	case EventInvoicePaymentFailed:
		err = s.upsertInvoice(ctx, event.Data.Raw, domain.InvoiceStatusFailed)
	default:
		logger.Info("Webhook da Stripe recebido, mas não tratado")
		webhookEvents.WithLabelValues("other", "ignored").Inc()
		return nil
	}

	switch {
	case err == nil:
		webhookEvents.WithLabelValues(eventType, "applied").Inc()
	case errors.Is(err, ErrMalformedEvent):
		logger.Warn("Evento da Stripe malformado", "error", err)
		webhookEvents.WithLabelValues(eventType, "malformed").Inc()
	default:
		logger.Error("Falha ao aplicar evento da Stripe", "error", err)
		webhookEvents.WithLabelValues(eventType, "error").Inc()
	}
	return err
}

func (s *WebhookService) upsertSubscription(ctx context.Context, logger *slog.Logger, event *stripe.Event, eventType string) error {
	var sub stripe.Subscription
	if err := decodeObject(event.Data.Raw, &sub); err != nil {
		return err
	}

	email := normalizeEmail(sub.Metadata["email"])
	if email == "" {
		logger.Warn("Assinatura sem e-mail nos metadados", "subscription_id", sub.ID)
		return s.recordUnmatched(ctx, event, eventType, reasonMissingEmail)
	}

	userID, err := s.repo.FindUserIDByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Warn("Nenhum usuário com o e-mail da assinatura", "subscription_id", sub.ID)
		return s.recordUnmatched(ctx, event, eventType, reasonUnknownUser)
	}
	if err != nil {
		return err
	}

	var planID string
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		planID = sub.Items.Data[0].Price.ID
	}
	var customerID string
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	return s.repo.UpsertSubscription(ctx, domain.Subscription{
		UserID:               userID,
		StripeSubscriptionID: sub.ID,
		StripeCustomerID:     customerID,
		Status:               string(sub.Status),
		CurrentPeriodStart:   time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		PlanID:               planID,
		UpdatedAt:            s.now().UTC(),
	})
}

func (s *WebhookService) cancelSubscription(ctx context.Context, logger *slog.Logger, raw json.RawMessage) error {
	var sub stripe.Subscription
	if err := decodeObject(raw, &sub); err != nil {
		return err
	}
	found, err := s.repo.CancelSubscription(ctx, sub.ID, s.now())
	if err != nil {
		return err
	}
	if !found {
		logger.Info("Assinatura cancelada não existe no espelho local", "subscription_id", sub.ID)
	}
	return nil
}

func (s *WebhookService) upsertInvoice(ctx context.Context, raw json.RawMessage, status string) error {
	var inv stripe.Invoice
	if err := decodeObject(raw, &inv); err != nil {
		return err
	}

	row := domain.Invoice{
		StripeInvoiceID: inv.ID,
		Currency:        string(inv.Currency),
		Status:          status,
		UpdatedAt:       s.now().UTC(),
	}
	if inv.Customer != nil {
		row.StripeCustomerID = inv.Customer.ID
	}
	if status == domain.InvoiceStatusPaid {
		row.Amount = inv.AmountPaid
		if inv.StatusTransitions != nil && inv.StatusTransitions.PaidAt > 0 {
			paidAt := time.Unix(inv.StatusTransitions.PaidAt, 0).UTC()
			row.PaidAt = &paidAt
		}
	} else {
		row.Amount = inv.AmountDue
	}

	return s.repo.UpsertInvoice(ctx, row)
}

func (s *WebhookService) recordUnmatched(ctx context.Context, event *stripe.Event, eventType, reason string) error {
	return s.repo.RecordUnmatchedEvent(ctx, domain.UnmatchedEvent{
		EventID:    event.ID,
		EventType:  eventType,
		Reason:     reason,
		Payload:    string(event.Data.Raw),
		ReceivedAt: s.now().UTC(),
	})
}

// decodeObject decodifica event.data.object. Objeto sem id é tratado como malformado.
func decodeObject(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	var id string
	switch o := v.(type) {
	case *stripe.Subscription:
		id = o.ID
	case *stripe.Invoice:
		id = o.ID
	}
	if id == "" {
		return fmt.Errorf("%w: objeto sem id", ErrMalformedEvent)
	}
	return nil
}
