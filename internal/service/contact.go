package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/osteele/liquid"
	"golang.org/x/sync/errgroup"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/mailer"
)

// NoteMailNotConfigured acompanha a resposta quando não há transporte de e-mail.
const NoteMailNotConfigured = "Email service not configured. Message logged for development."

const adminTemplate = `<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{ name }}</p>
<p><strong>Email:</strong> {{ email }}</p>
<p><strong>Subject:</strong> {{ subject }}</p>
<p><strong>Message:</strong></p>
<p>{{ message }}</p>`

const ackTemplate = `<h2>Thank You for Contacting Us!</h2>
<p>Hi {{ name }},</p>
<p>We have received your message and will get back to you as soon as possible.</p>
<p><strong>Your Message:</strong></p>
<p>{{ message }}</p>
<p>Best regards,<br>{{ site_name }} Team</p>`

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeHTML escapa o texto do usuário antes de entrar no template.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ContactOptions são os endereços usados nos e-mails do formulário.
type ContactOptions struct {
	From         string
	AdminAddress string
	SiteName     string
}

// ContactResult é o que o handler devolve ao cliente além do sucesso.
type ContactResult struct {
	Note string
}

// ContactService envia a notificação para o admin e a confirmação para quem escreveu.
// Com mailer nil o serviço só registra a mensagem no log.
type ContactService struct {
	mailer mailer.Mailer
	opts   ContactOptions
	admin  *liquid.Template
	ack    *liquid.Template
}

// NewContactService compila os templates. m pode ser nil.
func NewContactService(m mailer.Mailer, opts ContactOptions) (*ContactService, error) {
	engine := liquid.NewEngine()
	admin, err := engine.ParseString(adminTemplate)
	if err != nil {
		return nil, fmt.Errorf("template admin: %w", err)
	}
	ack, err := engine.ParseString(ackTemplate)
	if err != nil {
		return nil, fmt.Errorf("template confirmação: %w", err)
	}
	return &ContactService{
		mailer: m,
		opts:   opts,
		admin:  admin,
		ack:    ack,
	}, nil
}

// Send valida a submissão e dispara os dois e-mails em paralelo.
// Qualquer falha de envio vira ErrDelivery.
func (s *ContactService) Send(ctx context.Context, sub domain.ContactSubmission) (ContactResult, error) {
	if err := validateStruct(sub); err != nil {
		contactMessages.WithLabelValues("invalid").Inc()
		return ContactResult{}, err
	}

	if s.mailer == nil {
		slog.Info("Formulário de contato recebido (e-mail não configurado)",
			"name", sub.Name,
			"email", sub.Email,
			"subject", sub.Subject,
			"message", sub.Message,
		)
		contactMessages.WithLabelValues("logged").Inc()
		return ContactResult{Note: NoteMailNotConfigured}, nil
	}

	adminMsg, ackMsg, err := s.render(sub)
	if err != nil {
		contactMessages.WithLabelValues("error").Inc()
		return ContactResult{}, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.mailer.Send(gctx, adminMsg); err != nil {
			return fmt.Errorf("notificação admin: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.mailer.Send(gctx, ackMsg); err != nil {
			return fmt.Errorf("confirmação: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Falha ao enviar e-mails do formulário de contato", "error", err)
		contactMessages.WithLabelValues("error").Inc()
		return ContactResult{}, errors.Join(ErrDelivery, err)
	}

	contactMessages.WithLabelValues("sent").Inc()
	return ContactResult{}, nil
}

func (s *ContactService) render(sub domain.ContactSubmission) (mailer.Message, mailer.Message, error) {
	bindings := map[string]any{
		"name":      escapeHTML(sub.Name),
		"email":     escapeHTML(sub.Email),
		"subject":   escapeHTML(sub.Subject),
		"message":   strings.ReplaceAll(escapeHTML(sub.Message), "\n", "<br>"),
		"site_name": escapeHTML(s.opts.SiteName),
	}

	adminHTML, err := s.admin.RenderString(bindings)
	if err != nil {
		return mailer.Message{}, mailer.Message{}, err
	}
	ackHTML, err := s.ack.RenderString(bindings)
	if err != nil {
		return mailer.Message{}, mailer.Message{}, err
	}

	email := strings.TrimSpace(sub.Email)
	adminMsg := mailer.Message{
		From:    s.opts.From,
		To:      s.opts.AdminAddress,
		ReplyTo: email,
		Subject: "New Contact Form Submission: " + sub.Subject,
		HTML:    adminHTML,
	}
	ackMsg := mailer.Message{
		From:    s.opts.From,
		To:      email,
		Subject: "We received your message - " + s.opts.SiteName,
		HTML:    ackHTML,
	}
	return adminMsg, ackMsg, nil
}
