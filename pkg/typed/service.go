package typed

import (
	"context"

	"github.com/quillhq/inkwell/pkg/core"
)

// Service wraps a core.Service to provide type-safe access on top of the
// lint-on-save and transaction behavior of the untyped service.
type Service[T any] struct {
	svc *core.Service
}

// NewService creates a new typed service wrapper.
func NewService[T any](svc *core.Service) *Service[T] {
	return &Service[T]{svc: svc}
}

// Save persists a typed document using the core Service (including lint checks).
func (s *Service[T]) Save(ctx context.Context, doc *PostModel[T]) error {
	if doc.Saver == nil {
		doc.Saver = s
	}

	metadata, err := toMetadata(doc.Meta)
	if err != nil {
		return err
	}

	return s.svc.SaveDocument(ctx, doc.ID, doc.Body, metadata)
}

// Watch observes changes in the repository.
func (s *Service[T]) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return s.svc.Watch(ctx, pattern)
}

// Get retrieves a document via Service.
func (s *Service[T]) Get(ctx context.Context, id string) (*PostModel[T], error) {
	coreDoc, err := s.svc.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(coreDoc, s)
}

// List returns all documents converted to the typed model.
func (s *Service[T]) List(ctx context.Context) ([]*PostModel[T], error) {
	coreDocs, err := s.svc.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*PostModel[T], 0, len(coreDocs))
	for _, d := range coreDocs {
		model, err := fromCore(d, s)
		if err != nil {
			return nil, err
		}
		result = append(result, model)
	}
	return result, nil
}

// Delete removes a document by ID.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	return s.svc.DeleteDocument(ctx, id)
}
