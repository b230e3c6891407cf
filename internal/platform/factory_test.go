package platform_test

import (
	"context"
	"testing"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/core"
)

func TestNew_LintOnSave(t *testing.T) {
	ctx := context.Background()

	t.Run("Default Rejects Malformed Front Matter", func(t *testing.T) {
		svc, err := inkwell.New(t.TempDir(),
			inkwell.WithAutoInit(true),
			inkwell.WithVersioning(false),
		)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		// No title, no date.
		err = svc.SaveDocument(ctx, "broken", "body", core.Metadata{"draft": "yes"})
		if err == nil {
			t.Error("Expected save to be rejected by content checks")
		}
	})

	t.Run("Disabled Accepts Anything", func(t *testing.T) {
		svc, err := inkwell.New(t.TempDir(),
			inkwell.WithAutoInit(true),
			inkwell.WithVersioning(false),
			inkwell.WithLintOnSave(false),
		)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		if err := svc.SaveDocument(ctx, "loose", "body", core.Metadata{"draft": "yes"}); err != nil {
			t.Errorf("Save with checks disabled failed: %v", err)
		}
	})
}
