package lint

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/quillhq/inkwell/pkg/content"
	"github.com/quillhq/inkwell/pkg/core"
	"github.com/quillhq/inkwell/pkg/render"
)

// Rule codes. Stable identifiers so CI pipelines can allowlist findings.
const (
	RuleFrontMatterEmpty  = "front_matter.empty"
	RuleTitleMissing      = "front_matter.title_missing"
	RuleTitleInvalid      = "front_matter.title_invalid"
	RuleDateMissing       = "front_matter.date_missing"
	RuleDateInvalid       = "front_matter.date_invalid"
	RuleFlagInvalid       = "front_matter.flag_invalid"
	RuleTagsInvalid       = "front_matter.tags_invalid"
	RuleImagesInvalid     = "front_matter.images_invalid"
	RuleMathFlagMissing   = "front_matter.math_flag_missing"
	RuleUnreadable        = "document.unreadable"
	RuleFenceUnclosed     = "body.fence_unclosed"
	RuleMathUnclosed      = "body.math_unclosed"
	RuleFenceLangMissing  = "body.fence_language_missing"
	RuleFenceLangUnknown  = "body.fence_language_unknown"
)

// checkFrontMatter validates the metadata block: a non-empty header with
// at minimum a title and a date, boolean flags, and list-valued tags
// and images.
func checkFrontMatter(doc core.Document) []Finding {
	var findings []Finding

	if len(doc.Metadata) == 0 {
		findings = append(findings, Finding{
			DocumentID: doc.ID,
			Rule:       RuleFrontMatterEmpty,
			Severity:   SeverityError,
			Message:    "document has no metadata block",
		})
		return findings
	}

	// Title: required, non-blank string.
	switch title := doc.Metadata[content.KeyTitle].(type) {
	case nil:
		findings = append(findings, errFinding(doc.ID, RuleTitleMissing, content.KeyTitle,
			"title is required"))
	case string:
		if err := validation.Validate(strings.TrimSpace(title), validation.Required); err != nil {
			findings = append(findings, errFinding(doc.ID, RuleTitleMissing, content.KeyTitle,
				"title must not be blank"))
		}
	default:
		findings = append(findings, errFinding(doc.ID, RuleTitleInvalid, content.KeyTitle,
			fmt.Sprintf("title must be text, got %T", title)))
	}

	// Date: required, a recognizable timestamp.
	if date, ok := doc.Metadata[content.KeyDate]; !ok {
		findings = append(findings, errFinding(doc.ID, RuleDateMissing, content.KeyDate,
			"publication date is required"))
	} else if _, err := content.ParseDate(date); err != nil {
		findings = append(findings, errFinding(doc.ID, RuleDateInvalid, content.KeyDate,
			err.Error()))
	}

	// Flags: boolean-valued when present.
	for _, key := range []string{content.KeyDraft, content.KeyTOC, content.KeyMath} {
		val, ok := doc.Metadata[key]
		if !ok {
			continue
		}
		if _, isBool := val.(bool); !isBool {
			findings = append(findings, errFinding(doc.ID, RuleFlagInvalid, key,
				fmt.Sprintf("%s must be a boolean, got %T", key, val)))
		}
	}

	// Tags and images: lists of text values when present.
	for key, rule := range map[string]string{
		content.KeyTags:   RuleTagsInvalid,
		content.KeyImages: RuleImagesInvalid,
	} {
		val, ok := doc.Metadata[key]
		if !ok {
			continue
		}
		if err := validateStringList(val); err != nil {
			findings = append(findings, errFinding(doc.ID, rule, key,
				fmt.Sprintf("%s must be a list of text values: %v", key, err)))
		}
	}

	return findings
}

// checkBody validates body structure: balanced code fences, terminated
// math blocks, and language tags on fences.
func checkBody(doc core.Document, body content.Body) []Finding {
	var findings []Finding

	for _, block := range body.Blocks {
		switch block.Kind {
		case content.BlockCode:
			if !block.Closed {
				findings = append(findings, Finding{
					DocumentID: doc.ID,
					Rule:       RuleFenceUnclosed,
					Severity:   SeverityError,
					Field:      "body",
					Line:       block.Line,
					Message:    "fenced code block is never closed",
				})
				continue
			}
			if block.Lang == "" {
				findings = append(findings, Finding{
					DocumentID: doc.ID,
					Rule:       RuleFenceLangMissing,
					Severity:   SeverityWarning,
					Field:      "body",
					Line:       block.Line,
					Message:    "fenced code block has no language tag; syntax highlighting will be skipped",
				})
			} else if !render.KnownLanguage(block.Lang) {
				findings = append(findings, Finding{
					DocumentID: doc.ID,
					Rule:       RuleFenceLangUnknown,
					Severity:   SeverityWarning,
					Field:      "body",
					Line:       block.Line,
					Message:    fmt.Sprintf("no highlighter lexer for language tag %q", block.Lang),
				})
			}
		case content.BlockMath:
			if !block.Closed {
				findings = append(findings, Finding{
					DocumentID: doc.ID,
					Rule:       RuleMathUnclosed,
					Severity:   SeverityError,
					Field:      "body",
					Line:       block.Line,
					Message:    "display math block is never closed",
				})
			}
		}
	}

	// Math rendering flag: the external renderer only loads the math
	// typesetter when the flag is set, so bodies with math notation
	// should declare it.
	if body.UsesMath() {
		if b, _ := doc.Metadata[content.KeyMath].(bool); !b {
			findings = append(findings, Finding{
				DocumentID: doc.ID,
				Rule:       RuleMathFlagMissing,
				Severity:   SeverityWarning,
				Field:      content.KeyMath,
				Message:    "body uses math notation but the math flag is not set",
			})
		}
	}

	return findings
}

func errFinding(docID, rule, field, msg string) Finding {
	return Finding{
		DocumentID: docID,
		Rule:       rule,
		Severity:   SeverityError,
		Field:      field,
		Message:    msg,
	}
}

func validateStringList(val any) error {
	switch v := val.(type) {
	case []string:
		return nil
	case []any:
		for i, item := range v {
			if _, ok := item.(string); !ok {
				return validation.NewError("content.list_element_invalid",
					fmt.Sprintf("element %d is %T", i, item))
			}
		}
		return nil
	default:
		return validation.NewError("content.list_invalid",
			fmt.Sprintf("got %T", val))
	}
}
