package domain

import "time"

// WaitlistEntry é um e-mail inscrito na lista de espera.
// O e-mail é sempre guardado normalizado (minúsculo e sem espaços).
type WaitlistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
