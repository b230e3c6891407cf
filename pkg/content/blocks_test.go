package content_test

import (
	"testing"

	"github.com/quillhq/inkwell/pkg/content"
)

func TestScan_ProseAndCode(t *testing.T) {
	body := `# Intro

Some prose.

` + "```go" + `
fmt.Println("hi")
` + "```" + `

More prose.
`
	scanned := content.Scan(body)

	code := scanned.CodeBlocks()
	if len(code) != 1 {
		t.Fatalf("expected 1 code block, got %d", len(code))
	}
	if code[0].Lang != "go" {
		t.Errorf("expected lang 'go', got %q", code[0].Lang)
	}
	if !code[0].Closed {
		t.Error("fence is terminated, Closed must be true")
	}
	if code[0].Text != `fmt.Println("hi")` {
		t.Errorf("unexpected code text: %q", code[0].Text)
	}

	if len(scanned.Headings) != 1 {
		t.Fatalf("expected 1 heading, got %d", len(scanned.Headings))
	}
	h := scanned.Headings[0]
	if h.Level != 1 || h.Text != "Intro" || h.Line != 1 {
		t.Errorf("unexpected heading: %+v", h)
	}
}

func TestScan_UnclosedFence(t *testing.T) {
	body := "prose\n```python\nprint('oops')\n"

	scanned := content.Scan(body)
	code := scanned.CodeBlocks()
	if len(code) != 1 {
		t.Fatalf("expected 1 code block, got %d", len(code))
	}
	if code[0].Closed {
		t.Error("unterminated fence must be marked unclosed")
	}
	if code[0].Lang != "python" {
		t.Errorf("lang: %q", code[0].Lang)
	}
	if code[0].Line != 2 {
		t.Errorf("fence line: %d", code[0].Line)
	}
}

func TestScan_TildeFence(t *testing.T) {
	body := "~~~ruby\nputs :ok\n~~~\n"

	code := content.Scan(body).CodeBlocks()
	if len(code) != 1 || code[0].Lang != "ruby" || !code[0].Closed {
		t.Fatalf("tilde fence not recognized: %+v", code)
	}
}

func TestScan_UntaggedFence(t *testing.T) {
	body := "```\nplain\n```\n"

	code := content.Scan(body).CodeBlocks()
	if len(code) != 1 {
		t.Fatalf("expected 1 code block, got %d", len(code))
	}
	if code[0].Lang != "" {
		t.Errorf("untagged fence must have empty lang, got %q", code[0].Lang)
	}
}

func TestScan_MathBlock(t *testing.T) {
	body := "before\n$$\nE = mc^2\n$$\nafter\n"

	scanned := content.Scan(body)

	var math []content.Block
	for _, b := range scanned.Blocks {
		if b.Kind == content.BlockMath {
			math = append(math, b)
		}
	}
	if len(math) != 1 {
		t.Fatalf("expected 1 math block, got %d", len(math))
	}
	if !math[0].Closed {
		t.Error("math block is terminated, Closed must be true")
	}
	if math[0].Text != "E = mc^2" {
		t.Errorf("math text: %q", math[0].Text)
	}
	if !scanned.UsesMath() {
		t.Error("UsesMath must be true for display math")
	}
}

func TestScan_UnclosedMath(t *testing.T) {
	body := "$$\nx + y\n"

	scanned := content.Scan(body)
	if len(scanned.Blocks) != 1 || scanned.Blocks[0].Kind != content.BlockMath {
		t.Fatalf("expected one math block: %+v", scanned.Blocks)
	}
	if scanned.Blocks[0].Closed {
		t.Error("dangling $$ must be marked unclosed")
	}
}

func TestUsesMath_Inline(t *testing.T) {
	withMath := content.Scan("The value $x^2$ grows fast.\n")
	if !withMath.UsesMath() {
		t.Error("inline $...$ span should count as math")
	}

	noMath := content.Scan("It costs $5 at most.\n")
	if noMath.UsesMath() {
		t.Error("a lone dollar amount is not math")
	}

	twoAmounts := content.Scan("We paid $5 and got $10 back.\n")
	if twoAmounts.UsesMath() {
		t.Error("two dollar amounts on one line are not a math span")
	}

	single := content.Scan("A single $x$ is still math.\n")
	if !single.UsesMath() {
		t.Error("one-character inline span should count as math")
	}
}

func TestScan_CodeFenceShieldsContent(t *testing.T) {
	// Headings and math delimiters inside a fence are literal text.
	body := "```text\n# not a heading\n$$\n```\n"

	scanned := content.Scan(body)
	if len(scanned.Headings) != 0 {
		t.Errorf("heading inside fence must not be extracted: %+v", scanned.Headings)
	}
	for _, b := range scanned.Blocks {
		if b.Kind == content.BlockMath {
			t.Errorf("math fence inside code block must be literal: %+v", b)
		}
	}
}

func TestScan_HeadingLevels(t *testing.T) {
	body := "# One\n## Two\n###### Six\n####### Seven hashes is prose\n"

	scanned := content.Scan(body)
	if len(scanned.Headings) != 3 {
		t.Fatalf("expected 3 headings, got %d: %+v", len(scanned.Headings), scanned.Headings)
	}
	if scanned.Headings[2].Level != 6 {
		t.Errorf("expected level 6, got %d", scanned.Headings[2].Level)
	}
}
