package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Mesma regra que o frontend usa: algo@algo.algo, sem espaços.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return isValidEmail(fl.Field().String())
	})
	// "required" aceita "   "; notblank não.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// normalizeEmail devolve o e-mail como ele é guardado: sem espaços e minúsculo.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateStruct roda as tags `validate`. Campo vazio tem precedência sobre
// e-mail malformado.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrValidation
	}
	for _, fe := range verrs {
		if fe.Tag() == "notblank" {
			return ErrRequiredFields
		}
	}
	return ErrInvalidEmail
}
