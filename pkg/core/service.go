package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Checker validates a document before it is persisted. The lint package
// provides the standard implementation; the interface lives here so the
// domain stays independent of the rule engine.
type Checker interface {
	// Check returns an error when the document violates a blocking rule.
	Check(doc Document) error
}

// Service handles the business logic for documents.
type Service struct {
	repo    Repository
	checker Checker

	mu              sync.RWMutex
	eventBufferSize int
}

// NewService creates a new Service. A nil checker disables lint-on-save.
func NewService(repo Repository, checker Checker) *Service {
	return &Service{repo: repo, checker: checker}
}

// SetEventBufferSize records the configured event buffer size for observability.
func (s *Service) SetEventBufferSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventBufferSize = size
}

// SaveDocument saves a document after validation.
func (s *Service) SaveDocument(ctx context.Context, id string, body string, metadata Metadata) error {
	if id == "" {
		return ErrEmptyID
	}

	doc := Document{
		ID:       id,
		Metadata: metadata,
		Body:     body,
	}

	if s.checker != nil {
		if err := s.checker.Check(doc); err != nil {
			return fmt.Errorf("document %s rejected: %w", id, err)
		}
	}

	return s.repo.Save(ctx, doc)
}

// GetDocument retrieves a document.
func (s *Service) GetDocument(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, ErrEmptyID
	}
	return s.repo.Get(ctx, id)
}

// ListDocuments retrieves all documents.
func (s *Service) ListDocuments(ctx context.Context) ([]Document, error) {
	return s.repo.List(ctx)
}

// DeleteDocument removes a document.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.repo.Delete(ctx, id)
}

// WithTransaction executes a function within a transaction.
func (s *Service) WithTransaction(ctx context.Context, fn func(tx Transaction) error) error {
	tr, ok := s.repo.(Transactional)
	if !ok {
		return errors.New("repository does not support transactions")
	}

	tx, err := tr.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	msg := "batch transaction"
	if val, ok := ctx.Value(ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	return tx.Commit(ctx, msg)
}

// Begin initiates a transaction manually.
// Exposed for power users or custom workflows.
func (s *Service) Begin(ctx context.Context) (Transaction, error) {
	tr, ok := s.repo.(Transactional)
	if !ok {
		return nil, errors.New("repository does not support transactions")
	}
	return tr.Begin(ctx)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}
