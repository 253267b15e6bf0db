package domain

import "time"

// Status de assinatura que nós mesmos escrevemos. Os demais status
// ("active", "past_due", "trialing"...) são copiados da Stripe sem alteração.
const SubscriptionStatusCanceled = "canceled"

// Status possíveis de uma fatura espelhada.
const (
	InvoiceStatusPaid   = "paid"
	InvoiceStatusFailed = "failed"
)

// User é a linha mínima da tabela users que precisamos para ligar
// um evento da Stripe ao usuário local (pelo e-mail).
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Subscription espelha uma assinatura da Stripe.
// A chave única é StripeSubscriptionID ("sub_...").
type Subscription struct {
	UserID               string    `json:"user_id"`
	StripeSubscriptionID string    `json:"stripe_subscription_id"`
	StripeCustomerID     string    `json:"stripe_customer_id"`
	Status               string    `json:"status"`
	CurrentPeriodStart   time.Time `json:"current_period_start"`
	CurrentPeriodEnd     time.Time `json:"current_period_end"`
	PlanID               string    `json:"plan_id"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Invoice espelha uma fatura da Stripe. A chave única é StripeInvoiceID ("in_...").
// PaidAt só existe para faturas pagas.
type Invoice struct {
	StripeInvoiceID  string     `json:"stripe_invoice_id"`
	StripeCustomerID string     `json:"stripe_customer_id"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UnmatchedEvent guarda eventos de assinatura que não conseguimos ligar
// a um usuário local, para que não se percam silenciosamente.
type UnmatchedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Reason     string    `json:"reason"`
	Payload    string    `json:"payload"`
	ReceivedAt time.Time `json:"received_at"`
}
