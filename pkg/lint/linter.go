// Package lint implements content well-formedness checks over vault
// documents: required metadata fields, typed flags, balanced code
// fences, and math-flag consistency. It has no opinion about prose.
package lint

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/quillhq/inkwell/pkg/content"
	"github.com/quillhq/inkwell/pkg/core"
)

// Linter runs well-formedness rules over documents.
type Linter struct {
	warningsAsErrors bool
}

// Option configures a Linter.
type Option func(*Linter)

// WithWarningsAsErrors promotes warnings to errors, for strict CI runs.
func WithWarningsAsErrors(strict bool) Option {
	return func(l *Linter) {
		l.warningsAsErrors = strict
	}
}

// New creates a Linter.
func New(opts ...Option) *Linter {
	l := &Linter{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lint runs every rule against a single document.
func (l *Linter) Lint(doc core.Document) []Finding {
	findings := checkFrontMatter(doc)
	findings = append(findings, checkBody(doc, content.Scan(doc.Body))...)

	if l.warningsAsErrors {
		for i := range findings {
			findings[i].Severity = SeverityError
		}
	}
	return findings
}

// IDLister enumerates document IDs without parsing contents. Adapters
// that implement it let the linter report documents that fail to load,
// which List would silently skip.
type IDLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// LintAll runs the rules against every document in the repository.
func (l *Linter) LintAll(ctx context.Context, repo core.Repository) (*Report, error) {
	ids, err := listIDs(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	report := NewReport()
	report.Documents = len(ids)
	for _, id := range ids {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		doc, err := repo.Get(ctx, id)
		if err != nil {
			report.Add(Finding{
				DocumentID: id,
				Rule:       RuleUnreadable,
				Severity:   SeverityError,
				Message:    err.Error(),
			})
			continue
		}
		report.Add(l.Lint(doc)...)
	}
	return report, nil
}

func listIDs(ctx context.Context, repo core.Repository) ([]string, error) {
	if lister, ok := repo.(IDLister); ok {
		return lister.ListIDs(ctx)
	}
	docs, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// Check implements core.Checker: it fails when the document violates a
// blocking rule, returning a validation.Errors map keyed by field so
// callers can render per-field messages.
func (l *Linter) Check(doc core.Document) error {
	errs := validation.Errors{}
	for _, f := range l.Lint(doc) {
		if f.Severity != SeverityError {
			continue
		}
		field := f.Field
		if field == "" {
			field = "document"
		}
		// Keep the first finding per field; later ones repeat the cause.
		if _, seen := errs[field]; !seen {
			errs[field] = validation.NewError(f.Rule, f.Message)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var _ core.Checker = (*Linter)(nil)
