package content

import (
	"regexp"
	"strings"
)

// BlockKind identifies the structural role of a body block.
type BlockKind string

const (
	BlockProse BlockKind = "prose"
	BlockCode  BlockKind = "code"
	BlockMath  BlockKind = "math"
)

// Block is one structural unit of a document body.
type Block struct {
	Kind BlockKind
	// Lang is the language tag of a fenced code block ("go", "ts", ...).
	// Empty for prose and math blocks, and for untagged fences.
	Lang string
	Text string
	// Line is the 1-based line number where the block starts.
	Line int
	// Closed reports whether a code or math fence was properly
	// terminated. Always true for prose.
	Closed bool
}

// Heading is an outline entry extracted from the body.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Body is the scanned structure of a document body.
type Body struct {
	Blocks   []Block
	Headings []Heading
}

// inlineMathRe matches $...$ spans on a single line. Both delimiters
// must hug non-space content, so dollar amounts never form a span even
// in pairs ("paid $5 and got $10"); the heuristic only needs to be
// good enough to suggest the math flag.
var inlineMathRe = regexp.MustCompile(`\$(?:[^$\s]|[^$\s][^$\n]*[^$\s])\$`)

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// Scan splits a body into ordered blocks and extracts the heading
// outline. Scanning never fails: malformed structure (an unterminated
// fence, a dangling $$) is recorded on the block itself so the linter
// can report it while the document stays loadable.
func Scan(body string) Body {
	var out Body
	lines := strings.Split(body, "\n")

	i := 0
	proseStart := -1

	flushProse := func(end int) {
		if proseStart < 0 {
			return
		}
		text := strings.Join(lines[proseStart:end], "\n")
		if strings.TrimSpace(text) != "" {
			out.Blocks = append(out.Blocks, Block{
				Kind:   BlockProse,
				Text:   text,
				Line:   proseStart + 1,
				Closed: true,
			})
		}
		proseStart = -1
	}

	for i < len(lines) {
		line := lines[i]

		if fence, lang, ok := openFence(line); ok {
			flushProse(i)
			block := Block{Kind: BlockCode, Lang: lang, Line: i + 1}
			start := i + 1
			j := start
			for ; j < len(lines); j++ {
				if closesFence(lines[j], fence) {
					block.Closed = true
					break
				}
			}
			block.Text = strings.Join(lines[start:j], "\n")
			out.Blocks = append(out.Blocks, block)
			if block.Closed {
				i = j + 1
			} else {
				i = j
			}
			continue
		}

		if isMathFence(line) {
			flushProse(i)
			block := Block{Kind: BlockMath, Line: i + 1}
			start := i + 1
			j := start
			for ; j < len(lines); j++ {
				if isMathFence(lines[j]) {
					block.Closed = true
					break
				}
			}
			block.Text = strings.Join(lines[start:j], "\n")
			out.Blocks = append(out.Blocks, block)
			if block.Closed {
				i = j + 1
			} else {
				i = j
			}
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			out.Headings = append(out.Headings, Heading{
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
				Line:  i + 1,
			})
		}

		if proseStart < 0 {
			proseStart = i
		}
		i++
	}
	flushProse(len(lines))

	return out
}

// UsesMath reports whether the body contains display math blocks or
// inline math spans.
func (b Body) UsesMath() bool {
	for _, block := range b.Blocks {
		switch block.Kind {
		case BlockMath:
			return true
		case BlockProse:
			if inlineMathRe.MatchString(block.Text) {
				return true
			}
		}
	}
	return false
}

// CodeBlocks returns the fenced code blocks in document order.
func (b Body) CodeBlocks() []Block {
	var blocks []Block
	for _, block := range b.Blocks {
		if block.Kind == BlockCode {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// openFence detects an opening code fence (``` or ~~~, three or more
// markers) and returns the fence prefix plus the language tag.
func openFence(line string) (fence, lang string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	for _, marker := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == marker {
			n++
		}
		if n >= 3 {
			info := strings.TrimSpace(trimmed[n:])
			// An info string containing the marker is not a fence
			// (e.g. inline ````code```` runs).
			if strings.ContainsRune(info, rune(marker)) {
				return "", "", false
			}
			if idx := strings.IndexAny(info, " \t"); idx >= 0 {
				info = info[:idx]
			}
			return trimmed[:n], info, true
		}
	}
	return "", "", false
}

// closesFence reports whether the line terminates a fence opened with
// the given prefix: same marker, at least as long, no info string.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	marker := fence[0]
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != marker {
			return false
		}
	}
	return len(trimmed) >= len(fence)
}

// isMathFence reports whether the line is a display math delimiter on
// its own line.
func isMathFence(line string) bool {
	return strings.TrimSpace(line) == "$$"
}
