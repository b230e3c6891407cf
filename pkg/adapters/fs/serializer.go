package fs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/niklasfasching/go-org/org"

	"github.com/quillhq/inkwell/pkg/content"
	"github.com/quillhq/inkwell/pkg/core"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Document (without ID).
	Parse(r io.Reader) (*core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
// Markdown is the canonical article format; Org is accepted as a
// secondary markup dialect.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".md":  &MarkdownSerializer{},
		".org": &OrgSerializer{},
	}
}

// --- Markdown Serializer ---

// MarkdownSerializer handles Markdown files with a front-matter block.
type MarkdownSerializer struct{}

func (s *MarkdownSerializer) Parse(r io.Reader) (*core.Document, error) {
	meta, body, err := content.Parse(r)
	if err != nil {
		return nil, err
	}
	return &core.Document{Metadata: meta, Body: body}, nil
}

func (s *MarkdownSerializer) Serialize(doc core.Document) ([]byte, error) {
	return content.Encode(doc.Metadata, doc.Body)
}

// --- Org Serializer ---

// OrgSerializer handles Org documents. Buffer settings (#+TITLE and
// friends) map onto the front-matter keys the vault recognizes.
type OrgSerializer struct{}

func (s *OrgSerializer) Parse(r io.Reader) (*core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	parsed := org.New().Parse(bytes.NewReader(data), "")
	if parsed.Error != nil {
		return nil, fmt.Errorf("invalid org document: %w", parsed.Error)
	}

	doc := &core.Document{Metadata: make(core.Metadata)}
	for key, val := range parsed.BufferSettings {
		switch strings.ToUpper(key) {
		case "TITLE":
			doc.Metadata[content.KeyTitle] = val
		case "DATE":
			doc.Metadata[content.KeyDate] = parseOrgDate(val)
		case "DRAFT":
			doc.Metadata[content.KeyDraft] = orgBool(val)
		case "TOC":
			doc.Metadata[content.KeyTOC] = orgBool(val)
		case "MATH":
			doc.Metadata[content.KeyMath] = orgBool(val)
		case "FILETAGS", "TAGS":
			doc.Metadata[content.KeyTags] = splitOrgTags(val)
		case "IMAGES":
			doc.Metadata[content.KeyImages] = strings.Fields(val)
		default:
			doc.Metadata[strings.ToLower(key)] = val
		}
	}

	doc.Body = stripKeywordHeader(string(data))
	return doc, nil
}

func (s *OrgSerializer) Serialize(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer

	writeSetting := func(key, val string) {
		fmt.Fprintf(&buf, "#+%s: %s\n", key, val)
	}

	if title, ok := doc.Metadata[content.KeyTitle].(string); ok && title != "" {
		writeSetting("TITLE", title)
	}
	if date, ok := doc.Metadata[content.KeyDate]; ok {
		if t, err := content.ParseDate(date); err == nil {
			writeSetting("DATE", t.Format("<2006-01-02 Mon>"))
		} else if s, ok := date.(string); ok {
			writeSetting("DATE", s)
		}
	}
	for _, flag := range []struct{ key, setting string }{
		{content.KeyDraft, "DRAFT"},
		{content.KeyTOC, "TOC"},
		{content.KeyMath, "MATH"},
	} {
		if b, ok := doc.Metadata[flag.key].(bool); ok && b {
			writeSetting(flag.setting, "t")
		}
	}
	if tags := (core.Document{Metadata: doc.Metadata}).Tags(); len(tags) > 0 {
		writeSetting("FILETAGS", ":"+strings.Join(tags, ":")+":")
	}
	if images := stringValues(doc.Metadata[content.KeyImages]); len(images) > 0 {
		writeSetting("IMAGES", strings.Join(images, " "))
	}
	for _, key := range customKeys(doc.Metadata) {
		writeSetting(strings.ToUpper(key), fmt.Sprintf("%v", doc.Metadata[key]))
	}

	if buf.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString(doc.Body)
	return buf.Bytes(), nil
}

// orgDateLayouts are the timestamp forms found inside org <...> stamps,
// in the order they are tried.
var orgDateLayouts = []string{
	"2006-01-02 Mon 15:04",
	"2006-01-02 15:04",
	"2006-01-02 Mon",
	"2006-01-02",
}

// parseOrgDate normalizes an org timestamp ("<2024-03-01 Fri>") into a
// form the front-matter date contract accepts. Values that do not parse
// pass through unchanged so the linter names the offending text.
func parseOrgDate(val string) string {
	raw := strings.Trim(val, "<>[] ")
	for _, layout := range orgDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if strings.Contains(layout, "15:04") {
			return t.Format("2006-01-02 15:04:05")
		}
		return t.Format("2006-01-02")
	}
	return raw
}

func orgBool(val string) bool {
	return strings.EqualFold(val, "t") || strings.EqualFold(val, "true")
}

// stringValues coerces a metadata list value into strings, skipping
// anything else; the linter owns reporting ill-typed elements.
func stringValues(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// customKeys returns the unrecognized metadata keys in sorted order so
// serialized output is deterministic.
func customKeys(meta core.Metadata) []string {
	recognized := map[string]bool{
		content.KeyTitle:  true,
		content.KeyDate:   true,
		content.KeyDraft:  true,
		content.KeyTOC:    true,
		content.KeyMath:   true,
		content.KeyTags:   true,
		content.KeyImages: true,
	}
	var keys []string
	for key := range meta {
		if !recognized[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// splitOrgTags handles both ":a:b:" filetag syntax and space-separated lists.
func splitOrgTags(val string) []string {
	val = strings.TrimSpace(val)
	var parts []string
	if strings.HasPrefix(val, ":") {
		parts = strings.Split(strings.Trim(val, ":"), ":")
	} else {
		parts = strings.Fields(val)
	}
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// stripKeywordHeader removes the leading #+KEY: block so the body starts
// at the first content line, mirroring how front matter is split off
// Markdown documents.
func stripKeywordHeader(raw string) string {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var body []string
	inHeader := true
	for scanner.Scan() {
		line := scanner.Text()
		if inHeader {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "#+") || trimmed == "" {
				continue
			}
			inHeader = false
		}
		body = append(body, line)
	}
	return strings.Join(body, "\n")
}
