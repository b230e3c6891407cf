package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillhq/inkwell/pkg/core"
)

// Transaction implements core.Transaction for the filesystem.
// Staged changes live in memory until Commit applies them in one pass
// and records a single git commit.
type Transaction struct {
	id      string
	repo    *Repository
	staged  map[string]core.Document // ID -> Document
	deleted map[string]bool          // ID -> bool
	mu      sync.Mutex
	closed  bool
}

// NewTransaction creates a transaction bound to the repository.
func NewTransaction(repo *Repository) *Transaction {
	tx := &Transaction{
		id:      uuid.NewString(),
		repo:    repo,
		staged:  make(map[string]core.Document),
		deleted: make(map[string]bool),
	}
	repo.registerTx(tx.id)
	return tx
}

// ID returns the transaction identifier.
func (t *Transaction) ID() string {
	return t.id
}

// Save stages a document for saving.
func (t *Transaction) Save(ctx context.Context, doc core.Document) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction closed")
	}
	if doc.ID == "" {
		return core.ErrEmptyID
	}

	t.staged[doc.ID] = doc
	delete(t.deleted, doc.ID)
	return nil
}

// Get retrieves a document, favoring staged changes.
func (t *Transaction) Get(ctx context.Context, id string) (core.Document, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return core.Document{}, fmt.Errorf("transaction closed")
	}

	if t.deleted[id] {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	if doc, ok := t.staged[id]; ok {
		return doc, nil
	}

	return t.repo.Get(ctx, id)
}

// Delete stages a document for deletion.
func (t *Transaction) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction closed")
	}

	t.deleted[id] = true
	delete(t.staged, id)
	return nil
}

// Commit applies all staged changes.
func (t *Transaction) Commit(ctx context.Context, changeReason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transaction already closed")
	}
	if t.repo.config.ReadOnly {
		return core.ErrReadOnly
	}

	// 1. Git Lock (if applicable)
	if !t.repo.config.Gitless {
		unlock, err := t.repo.git.Lock()
		if err != nil {
			return fmt.Errorf("failed to acquire git lock: %w", err)
		}
		defer unlock()
	}

	// 2. Apply writes to disk
	var filesToAdd []string
	var filesToRm []string

	for id, doc := range t.staged {
		filename, ext := t.repo.filenameFor(id)
		serializer, ok := t.repo.serializerFor(ext)
		if !ok {
			return fmt.Errorf("no serializer for %s", ext)
		}

		fullPath := filepath.Join(t.repo.Path, filename)
		filesToAdd = append(filesToAdd, filename)

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return fmt.Errorf("failed to create directories for %s: %w", id, err)
		}

		data, err := serializer.Serialize(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", id, err)
		}

		if err := writeFileAtomic(fullPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", id, err)
		}

		t.repo.cache.Set(filepath.ToSlash(filename), &indexEntry{
			ID:           id,
			Metadata:     doc.Metadata,
			LastModified: time.Now(),
		})
	}

	// 3. Apply deletes
	for id := range t.deleted {
		filename, _ := t.repo.filenameFor(id)
		fullPath := filepath.Join(t.repo.Path, filename)
		filesToRm = append(filesToRm, filename)
		t.repo.cache.Delete(filepath.ToSlash(filename))

		if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove file %s: %w", id, err)
		}
	}

	// 4. Git Commit
	if !t.repo.config.Gitless {
		if len(filesToAdd) > 0 {
			if err := t.repo.git.Add(filesToAdd...); err != nil {
				return fmt.Errorf("failed to git add: %w", err)
			}
		}

		if len(filesToRm) > 0 {
			if err := t.repo.git.Rm(filesToRm...); err != nil {
				return fmt.Errorf("failed to git rm: %w", err)
			}
		}

		msg := changeReason
		if msg == "" {
			msg = "batch transaction update"
		}
		if err := t.repo.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to git commit: %w", err)
		}
	}

	if err := t.repo.cache.Save(); err != nil && t.repo.config.Logger != nil {
		t.repo.config.Logger.Warn("failed to save index cache", "error", err)
	}

	t.closed = true
	t.repo.unregisterTx(t.id)
	return nil
}

// Rollback discards all staged changes.
func (t *Transaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.staged = nil
	t.deleted = nil
	t.closed = true
	t.repo.unregisterTx(t.id)
	return nil
}

var _ core.Transaction = (*Transaction)(nil)
