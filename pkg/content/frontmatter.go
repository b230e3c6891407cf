// Package content defines the document format contract: a front-matter
// metadata block followed by a markup body. It is the single place that
// knows which metadata keys the vault recognizes and how the body is
// structured (prose, fenced code, math blocks).
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Metadata is the raw front-matter mapping as it appears on disk.
// Values are untyped because authors write YAML/TOML by hand; the typed
// view lives in FrontMatter and the linter reports mismatches.
type Metadata map[string]any

// Recognized front-matter keys.
const (
	KeyTitle  = "title"
	KeyDate   = "date"
	KeyDraft  = "draft"
	KeyTOC    = "toc"
	KeyMath   = "math"
	KeyImages = "images"
	KeyTags   = "tags"
)

// FrontMatter is the typed view of a document's metadata block.
// Unrecognized keys survive round-trips through Custom.
type FrontMatter struct {
	Title  string         `yaml:"title,omitempty"`
	Date   time.Time      `yaml:"date,omitempty"`
	Draft  bool           `yaml:"draft,omitempty"`
	TOC    bool           `yaml:"toc,omitempty"`
	Math   bool           `yaml:"math,omitempty"`
	Images []string       `yaml:"images,omitempty"`
	Tags   []string       `yaml:"tags,omitempty"`
	Custom map[string]any `yaml:",inline"`
}

// Parse splits a raw document into its metadata block and body.
// Both YAML (---) and TOML (+++) fences are accepted. A document without
// a metadata block is valid: the whole input becomes the body.
//
// An opening fence without a closing fence is a load error. The linter
// covers softer well-formedness concerns; a half-open metadata block
// makes the body boundary ambiguous, so we refuse to guess.
func Parse(r io.Reader) (Metadata, string, error) {
	meta := make(Metadata)
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	return meta, string(body), nil
}

// ParseBytes is a convenience wrapper around Parse.
func ParseBytes(data []byte) (Metadata, string, error) {
	return Parse(bytes.NewReader(data))
}

// Encode serializes a metadata block and body back to the canonical
// on-disk form: a YAML fence followed by the body. An empty metadata
// block produces no fence.
func Encode(meta Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer
	if len(meta) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any(meta)); err != nil {
			return nil, fmt.Errorf("encode front matter: %w", err)
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// Decode builds the typed FrontMatter view from raw metadata.
// Decoding is tolerant about value shapes (a lone tag string becomes a
// one-element list, dates may be strings or timestamps); values that
// cannot be coerced are reported as errors so the linter can surface
// them with the offending key.
func Decode(meta Metadata) (FrontMatter, error) {
	fm := FrontMatter{Custom: make(map[string]any)}

	var errs []error
	for key, val := range meta {
		switch key {
		case KeyTitle:
			s, ok := val.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: expected string, got %T", key, val))
				continue
			}
			fm.Title = s
		case KeyDate:
			t, err := ParseDate(val)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			fm.Date = t
		case KeyDraft, KeyTOC, KeyMath:
			b, ok := val.(bool)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: expected boolean, got %T", key, val))
				continue
			}
			switch key {
			case KeyDraft:
				fm.Draft = b
			case KeyTOC:
				fm.TOC = b
			case KeyMath:
				fm.Math = b
			}
		case KeyTags, KeyImages:
			list, err := stringList(val)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			if key == KeyTags {
				fm.Tags = list
			} else {
				fm.Images = list
			}
		default:
			fm.Custom[key] = val
		}
	}

	if len(errs) > 0 {
		return fm, fmt.Errorf("decode front matter: %w", errors.Join(errs...))
	}
	return fm, nil
}

// Meta converts the typed view back to a raw metadata map.
func (fm FrontMatter) Meta() Metadata {
	meta := make(Metadata, len(fm.Custom)+7)
	for k, v := range fm.Custom {
		meta[k] = v
	}
	if fm.Title != "" {
		meta[KeyTitle] = fm.Title
	}
	if !fm.Date.IsZero() {
		meta[KeyDate] = fm.Date
	}
	if fm.Draft {
		meta[KeyDraft] = true
	}
	if fm.TOC {
		meta[KeyTOC] = true
	}
	if fm.Math {
		meta[KeyMath] = true
	}
	if len(fm.Images) > 0 {
		meta[KeyImages] = append([]string(nil), fm.Images...)
	}
	if len(fm.Tags) > 0 {
		meta[KeyTags] = append([]string(nil), fm.Tags...)
	}
	return meta
}

// dateLayouts are the accepted string forms for the date field, in the
// order they are tried.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate coerces a front-matter value into a timestamp.
// YAML gives us time.Time directly for unquoted dates; quoted dates
// arrive as strings.
func ParseDate(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", v)
	default:
		return time.Time{}, fmt.Errorf("expected timestamp, got %T", val)
	}
}

// stringList coerces a front-matter value into a list of strings.
// A bare string is promoted to a one-element list (a common authoring
// shortcut for a single tag).
func stringList(val any) ([]string, error) {
	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected list of strings, found %T element", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of strings, got %T", val)
	}
}
