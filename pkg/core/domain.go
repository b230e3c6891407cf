// Package core holds the domain model of the vault: documents with a
// front-matter metadata block and a markup body, and the ports the
// storage adapters implement.
package core

import "github.com/quillhq/inkwell/pkg/content"

// Metadata is the raw front-matter mapping of a document.
type Metadata = content.Metadata

// Document is the central entity of the domain: one article, comprising
// a metadata header and a text body. It is agnostic to the on-disk
// markup dialect (Markdown, Org).
type Document struct {
	ID       string
	Metadata Metadata
	Body     string
}

// FrontMatter returns the typed view of the document's metadata.
// Values that cannot be coerced are reported in the error; the partial
// view is still returned so callers can work with the valid fields.
func (d Document) FrontMatter() (content.FrontMatter, error) {
	return content.Decode(d.Metadata)
}

// Title returns the document title, or "" when absent or untyped.
func (d Document) Title() string {
	t, _ := d.Metadata[content.KeyTitle].(string)
	return t
}

// IsDraft reports whether the document carries a true draft flag.
func (d Document) IsDraft() bool {
	b, _ := d.Metadata[content.KeyDraft].(bool)
	return b
}

// Tags returns the document's tag list. Untyped entries are skipped;
// the linter reports them.
func (d Document) Tags() []string {
	var tags []string
	switch v := d.Metadata[content.KeyTags].(type) {
	case []string:
		tags = append(tags, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
	case string:
		tags = append(tags, v)
	}
	return tags
}

// HasTag reports whether the document carries the given tag.
func (d Document) HasTag(tag string) bool {
	for _, t := range d.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the vault.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}
