package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
	"github.com/willjrcristo/kdpsuite-api/internal/repository"
)

// WaitlistStore é o armazenamento da lista de espera (arquivo JSON ou Redis).
type WaitlistStore interface {
	Add(ctx context.Context, entry domain.WaitlistEntry) error
	List(ctx context.Context) ([]domain.WaitlistEntry, error)
	Count(ctx context.Context) (int, error)
}

// WaitlistService valida e normaliza as inscrições antes de gravá-las.
type WaitlistService struct {
	store WaitlistStore
	now   func() time.Time
}

// NewWaitlistService cria o serviço da lista de espera.
func NewWaitlistService(store WaitlistStore) *WaitlistService {
	return &WaitlistService{
		store: store,
		now:   time.Now,
	}
}

// Add inscreve o e-mail. Retorna ErrValidation para e-mail vazio ou malformado
// e ErrConflict se o e-mail (já normalizado) estiver na lista.
func (s *WaitlistService) Add(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	if strings.TrimSpace(email) == "" {
		waitlistSignups.WithLabelValues("invalid").Inc()
		return nil, ErrRequiredFields
	}
	if !isValidEmail(email) {
		waitlistSignups.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidEmail
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("gerar id da inscrição: %w", err)
	}
	entry := domain.WaitlistEntry{
		ID:        id.String(),
		Email:     normalizeEmail(email),
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Add(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			waitlistSignups.WithLabelValues("duplicate").Inc()
			return nil, fmt.Errorf("%w: %s", ErrConflict, entry.Email)
		}
		waitlistSignups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("salvar inscrição: %w", err)
	}

	waitlistSignups.WithLabelValues("added").Inc()
	slog.Info("Nova inscrição na lista de espera", "id", entry.ID)
	return &entry, nil
}

// List devolve as inscrições, da mais recente para a mais antiga.
func (s *WaitlistService) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar inscrições: %w", err)
	}
	if entries == nil {
		entries = []domain.WaitlistEntry{}
	}
	return entries, nil
}

// Count devolve o total de inscrições.
func (s *WaitlistService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("contar inscrições: %w", err)
	}
	return n, nil
}
