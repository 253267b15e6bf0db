// Package service contém as regras de negócio do site: lista de espera,
// formulário de contato, checkout e reconciliação dos webhooks da Stripe.
package service

import (
	"errors"
	"fmt"
)

// Erros de negócio. Os handlers HTTP traduzem cada um para um status code.
var (
	ErrValidation       = errors.New("dados inválidos")
	ErrConflict         = errors.New("registro já existe")
	ErrNotFound         = errors.New("não encontrado")
	ErrMissingSignature = errors.New("assinatura do webhook ausente")
	ErrInvalidSignature = errors.New("assinatura do webhook inválida")
	ErrMalformedEvent   = errors.New("evento da stripe malformado")
	ErrProvider         = errors.New("falha no provedor de pagamento")
	ErrDelivery         = errors.New("falha no envio de e-mail")
)

// Variações de ErrValidation, para o handler escolher a mensagem certa.
var (
	ErrRequiredFields = fmt.Errorf("%w: campos obrigatórios ausentes", ErrValidation)
	ErrInvalidEmail   = fmt.Errorf("%w: e-mail inválido", ErrValidation)
)
