package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
)

// ErrNotFound é retornado quando a linha procurada não existe.
var ErrNotFound = errors.New("registro não encontrado")

// BillingRepository define a persistência do espelho de assinaturas e faturas da Stripe.
// Toda escrita é um upsert pela chave da Stripe, então reprocessar o mesmo evento é seguro.
type BillingRepository interface {
	FindUserIDByEmail(ctx context.Context, email string) (string, error)
	UpsertSubscription(ctx context.Context, sub domain.Subscription) error
	CancelSubscription(ctx context.Context, stripeSubscriptionID string, at time.Time) (bool, error)
	UpsertInvoice(ctx context.Context, inv domain.Invoice) error
	RecordUnmatchedEvent(ctx context.Context, ev domain.UnmatchedEvent) error
}

// SQLBillingRepository implementa BillingRepository sobre database/sql.
// As queries são escritas com "?" e convertidas pelo sqlx para o placeholder do driver.
type SQLBillingRepository struct {
	db       *sql.DB
	bindType int
}

// NewSQLBillingRepository cria o repositório. driver é "pgx" ou "sqlite3".
func NewSQLBillingRepository(db *sql.DB, driver string) *SQLBillingRepository {
	return &SQLBillingRepository{
		db:       db,
		bindType: sqlx.BindType(driver),
	}
}

// --- MÉTODOS DA IMPLEMENTAÇÃO ---

func (r *SQLBillingRepository) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, r.bind("SELECT id FROM users WHERE lower(email) = lower(?)"), email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find user by email: %w", err)
	}
	return id, nil
}

func (r *SQLBillingRepository) UpsertSubscription(ctx context.Context, sub domain.Subscription) error {
	_, err := r.db.ExecContext(ctx, r.bind(`
		INSERT INTO subscriptions
			(user_id, stripe_subscription_id, stripe_customer_id, status,
			 current_period_start, current_period_end, plan_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (stripe_subscription_id) DO UPDATE SET
			user_id              = excluded.user_id,
			stripe_customer_id   = excluded.stripe_customer_id,
			status               = excluded.status,
			current_period_start = excluded.current_period_start,
			current_period_end   = excluded.current_period_end,
			plan_id              = excluded.plan_id,
			updated_at           = excluded.updated_at
	`), sub.UserID, sub.StripeSubscriptionID, sub.StripeCustomerID, sub.Status,
		sub.CurrentPeriodStart.UTC(), sub.CurrentPeriodEnd.UTC(), sub.PlanID, sub.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert subscription %s: %w", sub.StripeSubscriptionID, err)
	}
	return nil
}

// CancelSubscription marca a assinatura como cancelada. Retorna false se ela não existe.
func (r *SQLBillingRepository) CancelSubscription(ctx context.Context, stripeSubscriptionID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.bind(`
		UPDATE subscriptions SET status = ?, updated_at = ?
		WHERE stripe_subscription_id = ?
	`), domain.SubscriptionStatusCanceled, at.UTC(), stripeSubscriptionID)
	if err != nil {
		return false, fmt.Errorf("cancel subscription %s: %w", stripeSubscriptionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel subscription %s: %w", stripeSubscriptionID, err)
	}
	return n > 0, nil
}

func (r *SQLBillingRepository) UpsertInvoice(ctx context.Context, inv domain.Invoice) error {
	var paidAt any
	if inv.PaidAt != nil {
		paidAt = inv.PaidAt.UTC()
	}
	// Uma falha posterior não apaga o paid_at de uma fatura que já foi paga.
	_, err := r.db.ExecContext(ctx, r.bind(`
		INSERT INTO invoices
			(stripe_invoice_id, stripe_customer_id, amount, currency, status, paid_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (stripe_invoice_id) DO UPDATE SET
			stripe_customer_id = excluded.stripe_customer_id,
			amount             = excluded.amount,
			currency           = excluded.currency,
			status             = excluded.status,
			paid_at            = COALESCE(excluded.paid_at, invoices.paid_at),
			updated_at         = excluded.updated_at
	`), inv.StripeInvoiceID, inv.StripeCustomerID, inv.Amount, inv.Currency, inv.Status, paidAt, inv.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert invoice %s: %w", inv.StripeInvoiceID, err)
	}
	return nil
}

func (r *SQLBillingRepository) RecordUnmatchedEvent(ctx context.Context, ev domain.UnmatchedEvent) error {
	_, err := r.db.ExecContext(ctx, r.bind(`
		INSERT INTO unmatched_webhook_events (event_id, event_type, reason, payload, received_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO UPDATE SET
			reason      = excluded.reason,
			payload     = excluded.payload,
			received_at = excluded.received_at
	`), ev.EventID, ev.EventType, ev.Reason, ev.Payload, ev.ReceivedAt.UTC())
	if err != nil {
		return fmt.Errorf("record unmatched event %s: %w", ev.EventID, err)
	}
	return nil
}

// GetSubscription busca a assinatura pelo ID da Stripe.
func (r *SQLBillingRepository) GetSubscription(ctx context.Context, stripeSubscriptionID string) (*domain.Subscription, error) {
	var (
		s          domain.Subscription
		start, end sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, r.bind(`
		SELECT user_id, stripe_subscription_id, stripe_customer_id, status,
		       current_period_start, current_period_end, plan_id, updated_at
		FROM subscriptions WHERE stripe_subscription_id = ?
	`), stripeSubscriptionID).Scan(
		&s.UserID, &s.StripeSubscriptionID, &s.StripeCustomerID, &s.Status,
		&start, &end, &s.PlanID, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription %s: %w", stripeSubscriptionID, err)
	}
	s.CurrentPeriodStart = start.Time
	s.CurrentPeriodEnd = end.Time
	return &s, nil
}

// GetInvoice busca a fatura pelo ID da Stripe.
func (r *SQLBillingRepository) GetInvoice(ctx context.Context, stripeInvoiceID string) (*domain.Invoice, error) {
	var (
		inv    domain.Invoice
		paidAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, r.bind(`
		SELECT stripe_invoice_id, stripe_customer_id, amount, currency, status, paid_at, updated_at
		FROM invoices WHERE stripe_invoice_id = ?
	`), stripeInvoiceID).Scan(
		&inv.StripeInvoiceID, &inv.StripeCustomerID, &inv.Amount, &inv.Currency,
		&inv.Status, &paidAt, &inv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", stripeInvoiceID, err)
	}
	if paidAt.Valid {
		t := paidAt.Time
		inv.PaidAt = &t
	}
	return &inv, nil
}

// bind converte os "?" para o estilo de placeholder do driver ("$n" no Postgres).
func (r *SQLBillingRepository) bind(query string) string {
	return sqlx.Rebind(r.bindType, query)
}
