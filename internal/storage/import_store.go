package storage

import (
	"context"
	"sync"
	"time"

	"github.com/grachmannico95/momo-ledger/internal/domain"
)

// ImportStore tracks SMS import runs, processed bus events and revoked
// access tokens.
type ImportStore struct {
	imports         map[string]*domain.Import
	processedEvents map[string]bool
	revokedTokens   map[string]bool
	mu              sync.RWMutex
}

func NewImportStore() *ImportStore {
	return &ImportStore{
		imports:         make(map[string]*domain.Import),
		processedEvents: make(map[string]bool),
		revokedTokens:   make(map[string]bool),
	}
}

func (s *ImportStore) CreateImport(ctx context.Context, importID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imports[importID] = &domain.Import{
		ID:        importID,
		Status:    domain.ImportStatusProcessing,
		CreatedAt: time.Now(),
	}

	return nil
}

func (s *ImportStore) GetImport(ctx context.Context, importID string) (*domain.Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	imp, exists := s.imports[importID]
	if !exists {
		return nil, domain.ErrImportNotFound
	}

	cp := *imp
	return &cp, nil
}

func (s *ImportStore) CompleteImport(ctx context.Context, importID string, stats domain.ImportStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp, exists := s.imports[importID]
	if !exists {
		return domain.ErrImportNotFound
	}

	now := time.Now()
	imp.Status = domain.ImportStatusCompleted
	imp.Stats = stats
	imp.CompletedAt = &now

	return nil
}

func (s *ImportStore) FailImport(ctx context.Context, importID string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	imp, exists := s.imports[importID]
	if !exists {
		return domain.ErrImportNotFound
	}

	now := time.Now()
	imp.Status = domain.ImportStatusFailed
	imp.Error = reason
	imp.CompletedAt = &now

	return nil
}

func (s *ImportStore) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.processedEvents[eventID], nil
}

func (s *ImportStore) MarkEventProcessed(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processedEvents[eventID] = true

	return nil
}

func (s *ImportStore) RevokeToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revokedTokens[token] = true

	return nil
}

func (s *ImportStore) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revokedTokens[token], nil
}
