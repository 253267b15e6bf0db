package service

import (
	"context"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v78"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/mailer"
)

// --- Mocks compartilhados pelos testes do pacote ---

// MockBillingRepository conta as chamadas para provar que nada foi gravado
// quando a verificação falha.
type MockBillingRepository struct {
	FindUserIDByEmailFn    func(ctx context.Context, email string) (string, error)
	UpsertSubscriptionFn   func(ctx context.Context, sub domain.Subscription) error
	CancelSubscriptionFn   func(ctx context.Context, id string, at time.Time) (bool, error)
	UpsertInvoiceFn        func(ctx context.Context, inv domain.Invoice) error
	RecordUnmatchedEventFn func(ctx context.Context, ev domain.UnmatchedEvent) error

	Calls int
}

func (m *MockBillingRepository) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	m.Calls++
	return m.FindUserIDByEmailFn(ctx, email)
}

func (m *MockBillingRepository) UpsertSubscription(ctx context.Context, sub domain.Subscription) error {
	m.Calls++
	return m.UpsertSubscriptionFn(ctx, sub)
}

func (m *MockBillingRepository) CancelSubscription(ctx context.Context, id string, at time.Time) (bool, error) {
	m.Calls++
	return m.CancelSubscriptionFn(ctx, id, at)
}

func (m *MockBillingRepository) UpsertInvoice(ctx context.Context, inv domain.Invoice) error {
	m.Calls++
	return m.UpsertInvoiceFn(ctx, inv)
}

func (m *MockBillingRepository) RecordUnmatchedEvent(ctx context.Context, ev domain.UnmatchedEvent) error {
	m.Calls++
	return m.RecordUnmatchedEventFn(ctx, ev)
}

// MockWaitlistStore é um store em memória com a mesma regra de unicidade dos reais.
type MockWaitlistStore struct {
	AddFn   func(ctx context.Context, entry domain.WaitlistEntry) error
	Entries []domain.WaitlistEntry
}

func (m *MockWaitlistStore) Add(ctx context.Context, entry domain.WaitlistEntry) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, entry)
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockWaitlistStore) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	return m.Entries, nil
}

func (m *MockWaitlistStore) Count(ctx context.Context) (int, error) {
	return len(m.Entries), nil
}

// MockMailer guarda as mensagens enviadas. É chamado de duas goroutines.
type MockMailer struct {
	SendFn func(ctx context.Context, msg mailer.Message) error

	mu   sync.Mutex
	Sent []mailer.Message
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	return nil
}

// MockSessionCreator captura os parâmetros enviados à Stripe.
type MockSessionCreator struct {
	NewFn  func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Params *stripe.CheckoutSessionParams
}

func (m *MockSessionCreator) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.Params = params
	return m.NewFn(params)
}
