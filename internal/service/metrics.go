package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas de negócio, registradas no registro padrão e expostas em /metrics.
var (
	waitlistSignups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_signups_total",
			Help: "Inscrições na lista de espera por resultado.",
		},
		[]string{"outcome"},
	)

	contactMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_messages_total",
			Help: "Mensagens do formulário de contato por resultado.",
		},
		[]string{"outcome"},
	)

	checkoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_checkout_sessions_total",
			Help: "Sessões de checkout criadas na Stripe por resultado.",
		},
		[]string{"outcome"},
	)

	// webhookEvents usa o tipo do evento como label só para os tipos tratados
	// (e "unknown" antes da verificação). Os demais caem em "other" para
	// limitar a cardinalidade; o tipo real fica no log.
	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_webhook_events_total",
			Help: "Eventos de webhook da Stripe por tipo e resultado. Tipos não tratados usam type=\"other\".",
		},
		[]string{"type", "outcome"},
	)
)
