package platform

import (
	"strings"
)

// CommitType constants for semantic commits
const (
	CommitTypeFeat     = "feat"
	CommitTypeFix      = "fix"
	CommitTypeDocs     = "docs"
	CommitTypeStyle    = "style"
	CommitTypeRefactor = "refactor"
	CommitTypePerf     = "perf"
	CommitTypeTest     = "test"
	CommitTypeChore    = "chore"
)

const commitFooter = "Powered-by: Inkwell"

// FormatChangeReason builds a Conventional Commit message.
// logic:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Powered-by: Inkwell
func FormatChangeReason(ctype, scope, subject, body string) string {
	var sb strings.Builder

	// Header
	if ctype == "" {
		ctype = CommitTypeChore // Default fallback if empty, though CLI might enforce validation
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	// Body
	if body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(body))
	}

	// Footer
	sb.WriteString("\n\n")
	sb.WriteString(commitFooter)

	return sb.String()
}

// AppendFooter appends the Inkwell footer to an arbitrary message if not present.
// Used for free-form -m "msg" commits.
func AppendFooter(msg string) string {
	if strings.Contains(msg, commitFooter) {
		return msg
	}

	// Ensure we don't glue it to the last line
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	// Keep a blank line before the footer
	if !strings.HasSuffix(msg, "\n\n") {
		msg += "\n"
	}

	return msg + commitFooter
}
