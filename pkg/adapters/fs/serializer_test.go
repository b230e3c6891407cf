package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/inkwell/pkg/core"
	"github.com/quillhq/inkwell/pkg/lint"
)

func TestMarkdownSerializer_RoundTrip(t *testing.T) {
	s := &MarkdownSerializer{}

	doc := core.Document{
		Body: "# Heading\n\nBody text.\n",
		Metadata: core.Metadata{
			"title": "Round Trip",
			"draft": true,
		},
	}

	data, err := s.Serialize(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))

	got, err := s.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "Round Trip", got.Metadata["title"])
	assert.Equal(t, true, got.Metadata["draft"])
	assert.Equal(t, doc.Body, got.Body)
}

func TestMarkdownSerializer_NoFrontMatter(t *testing.T) {
	s := &MarkdownSerializer{}

	got, err := s.Parse(strings.NewReader("plain body\n"))
	require.NoError(t, err)
	assert.Empty(t, got.Metadata)
	assert.Equal(t, "plain body\n", got.Body)
}

func TestOrgSerializer_Parse(t *testing.T) {
	s := &OrgSerializer{}

	raw := `#+TITLE: Org Post
#+DATE: <2024-03-01 Fri>
#+DRAFT: t
#+FILETAGS: :emacs:tools:

* First Heading
Some org prose.
`
	got, err := s.Parse(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "Org Post", got.Metadata["title"])
	assert.Equal(t, "2024-03-01", got.Metadata["date"])
	assert.Equal(t, true, got.Metadata["draft"])
	assert.Equal(t, []string{"emacs", "tools"}, got.Metadata["tags"])
	assert.True(t, strings.HasPrefix(got.Body, "* First Heading"))
	assert.NotContains(t, got.Body, "#+TITLE")
}

func TestOrgSerializer_Serialize(t *testing.T) {
	s := &OrgSerializer{}

	doc := core.Document{
		Body: "* Heading\ntext\n",
		Metadata: core.Metadata{
			"title":  "Out",
			"date":   "2024-03-01",
			"draft":  true,
			"toc":    true,
			"math":   true,
			"tags":   []string{"a", "b"},
			"images": []string{"cover.png"},
			"series": "internals",
		},
	}

	data, err := s.Serialize(doc)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "#+TITLE: Out")
	assert.Contains(t, out, "#+DATE: <2024-03-01 Fri>")
	assert.Contains(t, out, "#+DRAFT: t")
	assert.Contains(t, out, "#+TOC: t")
	assert.Contains(t, out, "#+MATH: t")
	assert.Contains(t, out, "#+FILETAGS: :a:b:")
	assert.Contains(t, out, "#+IMAGES: cover.png")
	assert.Contains(t, out, "#+SERIES: internals")
	assert.Contains(t, out, "* Heading")
}

func TestOrgSerializer_RoundTripLintsClean(t *testing.T) {
	s := &OrgSerializer{}

	doc := core.Document{
		ID:   "relativity.org",
		Body: "* Heading\n\n$$\nE = mc^2\n$$\n",
		Metadata: core.Metadata{
			"title":  "Relativity",
			"date":   "2024-03-01",
			"draft":  true,
			"toc":    true,
			"math":   true,
			"tags":   []string{"physics"},
			"images": []string{"einstein.png"},
			"series": "papers",
		},
	}

	data, err := s.Serialize(doc)
	require.NoError(t, err)

	got, err := s.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	got.ID = doc.ID

	assert.Equal(t, "2024-03-01", got.Metadata["date"])
	assert.Equal(t, true, got.Metadata["toc"])
	assert.Equal(t, true, got.Metadata["math"])
	assert.Equal(t, []string{"einstein.png"}, got.Metadata["images"])
	assert.Equal(t, "papers", got.Metadata["series"])

	// A document the vault wrote must pass its own checks.
	findings := lint.New().Lint(*got)
	assert.Empty(t, findings)
}

func TestParseOrgDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", parseOrgDate("<2024-03-01 Fri>"))
	assert.Equal(t, "2024-03-01", parseOrgDate("[2024-03-01]"))
	assert.Equal(t, "2024-03-01 10:30:00", parseOrgDate("<2024-03-01 Fri 10:30>"))
	assert.Equal(t, "someday", parseOrgDate("someday"))
}

func TestSplitOrgTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrgTags(":a:b:"))
	assert.Equal(t, []string{"a", "b"}, splitOrgTags("a b"))
	assert.Empty(t, splitOrgTags("  "))
}
