package domain

// ContactSubmission é o payload do formulário de contato.
// Não é persistido: vive apenas durante a requisição.
type ContactSubmission struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank,basic_email"`
	Subject string `json:"subject" validate:"notblank"`
	Message string `json:"message" validate:"notblank"`
}
