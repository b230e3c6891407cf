package typed

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/quillhq/inkwell/pkg/core"
)

// PostModel wraps the raw core.Document with a typed front-matter field.
// It acts as a typed view of a document: T holds the front-matter keys
// the caller cares about, everything else is dropped on the floor.
type PostModel[T any] struct {
	ID    string
	Body  string
	Meta  T        // The typed front matter
	Saver Saver[T] // Active Record reference interface
}

// Saver interface avoids circular dependencies or tight coupling with Repository/Service structs.
type Saver[T any] interface {
	Save(ctx context.Context, doc *PostModel[T]) error
}

// Save persists the document using the attached saver (Repository or Service).
func (d *PostModel[T]) Save(ctx context.Context) error {
	if d.Saver == nil {
		return fmt.Errorf("document is detached (missing Saver)")
	}
	return d.Saver.Save(ctx, d)
}

// Repository wraps a core.Repository to provide type-safe access.
type Repository[T any] struct {
	repo core.Repository
}

// NewRepository creates a new type-safe wrapper around an existing repository.
func NewRepository[T any](repo core.Repository) *Repository[T] {
	return &Repository[T]{repo: repo}
}

// Save persists a typed document.
func (r *Repository[T]) Save(ctx context.Context, doc *PostModel[T]) error {
	metadata, err := toMetadata(doc.Meta)
	if err != nil {
		return err
	}

	coreDoc := core.Document{
		ID:       doc.ID,
		Body:     doc.Body,
		Metadata: metadata,
	}

	// Attach saver
	if doc.Saver == nil {
		doc.Saver = r
	}

	return r.repo.Save(ctx, coreDoc)
}

// Get retrieves a document and unmarshals its front matter.
func (r *Repository[T]) Get(ctx context.Context, id string) (*PostModel[T], error) {
	coreDoc, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(coreDoc, r)
}

// List returns all documents converted to the typed model.
func (r *Repository[T]) List(ctx context.Context) ([]*PostModel[T], error) {
	coreDocs, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*PostModel[T], 0, len(coreDocs))
	for _, d := range coreDocs {
		model, err := fromCore(d, r)
		if err != nil {
			return nil, fmt.Errorf("failed to process document %s: %w", d.ID, err)
		}
		result = append(result, model)
	}
	return result, nil
}

// Delete removes a document by ID.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

// toMetadata round-trips a typed value through YAML so the stored keys
// match what the front-matter serializer will write.
func toMetadata[T any](data T) (core.Metadata, error) {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed front matter: %w", err)
	}

	var metadata core.Metadata
	if err := yaml.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("failed to convert typed front matter to map: %w", err)
	}
	return metadata, nil
}

// Helper to convert core.Document to PostModel
func fromCore[T any](coreDoc core.Document, saver Saver[T]) (*PostModel[T], error) {
	raw, err := yaml.Marshal(coreDoc.Metadata)
	if err != nil {
		return nil, fmt.Errorf("front matter marshal failed: %w", err)
	}

	var data T
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal to target type failed: %w", err)
	}

	return &PostModel[T]{
		ID:    coreDoc.ID,
		Body:  coreDoc.Body,
		Meta:  data,
		Saver: saver,
	}, nil
}
