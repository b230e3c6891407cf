// Package render is a preview of the external renderer contract: it
// turns a single document body into HTML, extracts the heading outline,
// and highlights fenced code blocks. It is deliberately not a site
// generator; published output remains the job of an external system.
package render

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Renderer converts markup bodies into preview HTML.
// It is stateless and safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New constructs a renderer with GFM extensions and auto heading IDs,
// matching what common static site pipelines produce.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// ToHTML renders a markdown body into HTML.
func (r *Renderer) ToHTML(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	return buf.Bytes(), nil
}

// TOCEntry is one heading in the document outline.
type TOCEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// TOC extracts the heading outline from a markdown body.
func (r *Renderer) TOC(body []byte) ([]TOCEntry, error) {
	root := r.md.Parser().Parse(text.NewReader(body))

	var entries []TOCEntry
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		entry := TOCEntry{
			Level: heading.Level,
			Text:  string(heading.Text(body)),
		}
		if id, found := heading.AttributeString("id"); found {
			if b, ok := id.([]byte); ok {
				entry.ID = string(b)
			}
		}
		entries = append(entries, entry)
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk headings: %w", err)
	}
	return entries, nil
}

// Highlight renders source code as HTML with syntax highlighting for
// the given language tag. Unknown tags fall back to the plaintext lexer.
func Highlight(source, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenise %q block: %w", lang, err)
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, styles.Get("friendly"), iterator); err != nil {
		return "", fmt.Errorf("format %q block: %w", lang, err)
	}
	return buf.String(), nil
}

// KnownLanguage reports whether the language tag resolves to a
// highlighter lexer. The linter uses this to flag typos like "pyton".
func KnownLanguage(lang string) bool {
	if strings.TrimSpace(lang) == "" {
		return false
	}
	return lexers.Get(lang) != nil
}
