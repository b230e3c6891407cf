package lint

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a finding.
type Severity string

const (
	// SeverityError marks a violation of a hard well-formedness rule.
	SeverityError Severity = "error"
	// SeverityWarning marks a likely authoring mistake that does not
	// make the document ill-formed.
	SeverityWarning Severity = "warning"
)

// Finding is one rule violation in one document.
type Finding struct {
	DocumentID string   `json:"document_id"`
	Rule       string   `json:"rule"`
	Severity   Severity `json:"severity"`
	// Field names the front-matter key at fault, or "body" for
	// structural findings.
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	loc := f.DocumentID
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.DocumentID, f.Line)
	}
	return fmt.Sprintf("%s: %s: [%s] %s", loc, f.Severity, f.Rule, f.Message)
}

// Report is the outcome of a lint run over one or more documents.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Documents int       `json:"documents"`
	Findings  []Finding `json:"findings,omitempty"`
}

// NewReport creates an empty report with a fresh run identifier.
func NewReport() *Report {
	return &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
}

// Add appends findings to the report.
func (r *Report) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Errors returns the error-severity findings.
func (r *Report) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity findings.
func (r *Report) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

// OK reports whether the run produced no errors. Warnings do not fail a run.
func (r *Report) OK() bool {
	return len(r.Errors()) == 0
}

func (r *Report) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
