// Package mailer envia os e-mails transacionais do site (formulário de contato).
package mailer

import "context"

// Message é um e-mail HTML pronto para envio.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer é qualquer transporte capaz de entregar uma Message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
