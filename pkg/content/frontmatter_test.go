package content_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quillhq/inkwell/pkg/content"
)

func TestParse_YAMLFence(t *testing.T) {
	raw := `---
title: Hello World
date: 2024-01-15
draft: true
tags:
  - go
  - blog
---
Body starts here.
`
	meta, body, err := content.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if meta["title"] != "Hello World" {
		t.Errorf("expected title 'Hello World', got %v", meta["title"])
	}
	if meta["draft"] != true {
		t.Errorf("expected draft true, got %v", meta["draft"])
	}
	if !strings.Contains(body, "Body starts here.") {
		t.Errorf("body lost: %q", body)
	}
	if strings.Contains(body, "title:") {
		t.Errorf("front matter leaked into body: %q", body)
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	raw := "Just a body, no metadata block.\n"

	meta, body, err := content.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(meta) != 0 {
		t.Errorf("expected empty metadata, got %v", meta)
	}
	if body != raw {
		t.Errorf("expected whole input as body, got %q", body)
	}
}

func TestParse_UnclosedFence(t *testing.T) {
	raw := "---\ntitle: Broken\nNo closing fence here.\n"

	_, _, err := content.Parse(strings.NewReader(raw))
	if err == nil {
		t.Fatal("expected error for unclosed front-matter fence")
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	meta := content.Metadata{
		"title": "Round Trip",
		"draft": true,
		"tags":  []string{"a", "b"},
	}
	body := "The body.\n"

	raw, err := content.Encode(meta, body)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, gotBody, err := content.ParseBytes(raw)
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if got["title"] != "Round Trip" {
		t.Errorf("title lost in round trip: %v", got["title"])
	}
	if gotBody != body {
		t.Errorf("body changed in round trip: %q", gotBody)
	}
}

func TestEncode_EmptyMetadata(t *testing.T) {
	raw, err := content.Encode(nil, "bare body")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(raw) != "bare body" {
		t.Errorf("empty metadata must produce no fence, got %q", raw)
	}
}

func TestDecode_TypedView(t *testing.T) {
	meta := content.Metadata{
		"title":  "Typed",
		"date":   "2024-01-15T10:00:00Z",
		"draft":  true,
		"math":   false,
		"tags":   []any{"go", "testing"},
		"series": "internals", // custom key
	}

	fm, err := content.Decode(meta)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if fm.Title != "Typed" {
		t.Errorf("title: %q", fm.Title)
	}
	if fm.Date.Year() != 2024 {
		t.Errorf("date: %v", fm.Date)
	}
	if !fm.Draft || fm.Math {
		t.Errorf("flags: draft=%v math=%v", fm.Draft, fm.Math)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "go" {
		t.Errorf("tags: %v", fm.Tags)
	}
	if fm.Custom["series"] != "internals" {
		t.Errorf("custom keys must survive: %v", fm.Custom)
	}
}

func TestDecode_IllTypedValues(t *testing.T) {
	meta := content.Metadata{
		"title": 42,
		"draft": "yes",
		"tags":  []any{"ok", 7},
	}

	_, err := content.Decode(meta)
	if err == nil {
		t.Fatal("expected error for ill-typed values")
	}
	msg := err.Error()
	for _, key := range []string{"title", "draft", "tags"} {
		if !strings.Contains(msg, key) {
			t.Errorf("error should name key %q: %v", key, msg)
		}
	}

	joined := errors.Unwrap(err)
	multi, ok := joined.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("per-key errors must stay unwrappable, got %T", joined)
	}
	if got := len(multi.Unwrap()); got != 3 {
		t.Errorf("expected 3 wrapped errors, got %d", got)
	}
}

func TestDecode_BareTagString(t *testing.T) {
	fm, err := content.Decode(content.Metadata{"tags": "solo"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(fm.Tags) != 1 || fm.Tags[0] != "solo" {
		t.Errorf("bare string should become one-element list, got %v", fm.Tags)
	}
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []string{
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00",
		"2024-01-15 10:30:00",
		"2024-01-15",
	}
	for _, c := range cases {
		ts, err := content.ParseDate(c)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", c, err)
			continue
		}
		if ts.Year() != 2024 || ts.Month() != time.January {
			t.Errorf("ParseDate(%q) = %v", c, ts)
		}
	}

	if _, err := content.ParseDate("January 15th"); err == nil {
		t.Error("expected error for free-form date")
	}
	if _, err := content.ParseDate(12345); err == nil {
		t.Error("expected error for non-string, non-time value")
	}
}

func TestFrontMatter_MetaRoundTrip(t *testing.T) {
	fm := content.FrontMatter{
		Title:  "Back Again",
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Draft:  true,
		Tags:   []string{"x"},
		Custom: map[string]any{"series": "s1"},
	}

	meta := fm.Meta()
	got, err := content.Decode(meta)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Title != fm.Title || !got.Date.Equal(fm.Date) || !got.Draft {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Custom["series"] != "s1" {
		t.Errorf("custom key lost: %v", got.Custom)
	}
}
