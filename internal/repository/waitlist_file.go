package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/willjrcristo/kdpsuite-api/internal/domain"
)

// ErrDuplicateEmail indica que o e-mail já está na lista de espera.
var ErrDuplicateEmail = errors.New("e-mail já cadastrado na lista de espera")

// FileWaitlistStore guarda a lista de espera inteira num único arquivo JSON.
// Cada inclusão reescreve o arquivo todo; o volume esperado é pequeno.
// O mutex só protege escritores do mesmo processo: entre processos vale a última escrita.
type FileWaitlistStore struct {
	path string
	mu   sync.Mutex
}

// NewFileWaitlistStore cria o store apontando para o arquivo informado.
// O arquivo não precisa existir.
func NewFileWaitlistStore(path string) *FileWaitlistStore {
	return &FileWaitlistStore{path: path}
}

// Add inclui a entrada no fim da lista. O e-mail já deve vir normalizado.
func (s *FileWaitlistStore) Add(ctx context.Context, entry domain.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Se o arquivo existe mas não pôde ser lido, reescrevê-lo apagaria a lista.
	entries, err := s.read()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Email == entry.Email {
			return ErrDuplicateEmail
		}
	}

	entries = append(entries, entry)
	return s.write(entries)
}

// List retorna as entradas da mais recente para a mais antiga.
func (s *FileWaitlistStore) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	s.mu.Lock()
	entries := s.readOrEmpty()
	s.mu.Unlock()

	out := make([]domain.WaitlistEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}

func (s *FileWaitlistStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.readOrEmpty()), nil
}

// read devolve lista vazia para arquivo ausente e erro para qualquer outra falha.
func (s *FileWaitlistStore) read() ([]domain.WaitlistEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.WaitlistEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read waitlist: %w", err)
	}

	var entries []domain.WaitlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode waitlist %s: %w", s.path, err)
	}
	return entries, nil
}

// readOrEmpty é a leitura tolerante usada por List e Count: falhas viram lista vazia.
func (s *FileWaitlistStore) readOrEmpty() []domain.WaitlistEntry {
	entries, err := s.read()
	if err != nil {
		slog.Warn("Não foi possível ler a lista de espera", "path", s.path, "error", err)
		return []domain.WaitlistEntry{}
	}
	return entries
}

func (s *FileWaitlistStore) write(entries []domain.WaitlistEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode waitlist: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create waitlist dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write waitlist: %w", err)
	}
	return nil
}
